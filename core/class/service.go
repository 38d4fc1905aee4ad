package class

import (
	"context"

	"github.com/pkg/errors"
)

// maxPages bounds paging loops against backends reporting a bogus page count.
const maxPages = 1000

type Repository interface {
	ListClasses(ctx context.Context, page, limit int) (Page, error)
}

// QueryAll fetches every page of classes, preserving the server's order.
func QueryAll(ctx context.Context, repo Repository, limit int) ([]Class, error) {
	all := make([]Class, 0)
	for page := 1; page <= maxPages; page++ {
		res, err := repo.ListClasses(ctx, page, limit)
		if err != nil {
			return nil, errors.Wrapf(err, "listing classes (page %d)", page)
		}
		all = append(all, res.Items...)
		if len(res.Items) == 0 || page >= res.TotalPages {
			break
		}
	}
	return all, nil
}
