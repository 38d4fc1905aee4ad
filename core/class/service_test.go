package class

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagedRepo struct {
	pages [][]Class
	total int
	err   error
	calls []int
}

func (r *pagedRepo) ListClasses(_ context.Context, page, _ int) (Page, error) {
	r.calls = append(r.calls, page)
	if r.err != nil {
		return Page{}, r.err
	}
	if page > len(r.pages) {
		return Page{TotalPages: r.total}, nil
	}
	return Page{Items: r.pages[page-1], TotalPages: r.total}, nil
}

func TestQueryAll(t *testing.T) {
	t.Run("every page in order", func(t *testing.T) {
		repo := &pagedRepo{pages: [][]Class{classes("1", "2"), classes("3")}, total: 2}
		all, err := QueryAll(context.Background(), repo, 2)
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, []int{1, 2}, repo.calls)
	})

	t.Run("stops on an empty page", func(t *testing.T) {
		repo := &pagedRepo{pages: [][]Class{classes("1")}, total: 99}
		all, err := QueryAll(context.Background(), repo, 1)
		require.NoError(t, err)
		assert.Len(t, all, 1)
		assert.Equal(t, []int{1, 2}, repo.calls)
	})

	t.Run("error", func(t *testing.T) {
		errBoom := errors.New("boom")
		_, err := QueryAll(context.Background(), &pagedRepo{err: errBoom}, 1)
		assert.True(t, errors.Is(err, errBoom))
	})
}
