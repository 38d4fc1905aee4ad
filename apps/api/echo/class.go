package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core/class"
)

type classApi struct {
	repo class.Repository
}

func registerClassAPI(g *echo.Group, repo class.Repository) {
	api := classApi{repo: repo}
	g.GET("/classes", api.query)
}

func (api *classApi) query(ctx echo.Context) error {
	pg := new(Pagination)
	pg.Bind(ctx)

	res, err := api.repo.ListClasses(ctx.Request().Context(), pg.Page, pg.Limit)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, listResponse{Data: res.Items, TotalPages: res.TotalPages})
}
