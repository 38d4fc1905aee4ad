package restrepos

import (
	"context"

	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/services/rest"
)

type classRepository struct {
	api *restsvc.Caller
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(api *restsvc.Caller) class.Repository {
	return &classRepository{api: api}
}

func (repo classRepository) ListClasses(ctx context.Context, page, limit int) (class.Page, error) {
	resp, err := repo.api.Call(ctx, restsvc.Get("/classes", pageQuery(page, limit)))
	if err != nil {
		return class.Page{}, err
	}
	var items []class.Class
	total, err := restsvc.DecodeList(resp.Body, &items)
	if err != nil {
		return class.Page{}, err
	}
	return class.Page{Items: items, TotalPages: total}, nil
}
