package student

import (
	"context"

	"github.com/pkg/errors"
)

// maxPages bounds paging loops against backends reporting a bogus page count.
const maxPages = 1000

type Repository interface {
	ListStudents(ctx context.Context, filter QueryFilter, page, limit int) (Page, error)
}

// QueryAll fetches every page of students matching filter, preserving the server's order.
func QueryAll(ctx context.Context, repo Repository, filter QueryFilter, limit int) ([]Student, error) {
	all := make([]Student, 0)
	for page := 1; page <= maxPages; page++ {
		res, err := repo.ListStudents(ctx, filter, page, limit)
		if err != nil {
			return nil, errors.Wrapf(err, "listing students (page %d)", page)
		}
		all = append(all, res.Items...)
		if len(res.Items) == 0 || page >= res.TotalPages {
			break
		}
	}
	return all, nil
}
