package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/student"
)

type studentApi struct {
	repo student.Repository
}

func registerStudentAPI(g *echo.Group, repo student.Repository) {
	api := studentApi{repo: repo}
	g.GET("/students", api.query)
}

func (api *studentApi) query(ctx echo.Context) error {
	pg := new(Pagination)
	pg.Bind(ctx)
	filter := student.QueryFilter{
		ClassID:   core.CleanString(ctx.QueryParam("classId")),
		SessionID: core.CleanString(ctx.QueryParam("sessionId")),
	}

	res, err := api.repo.ListStudents(ctx.Request().Context(), filter, pg.Page, pg.Limit)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, listResponse{Data: res.Items, TotalPages: res.TotalPages})
}
