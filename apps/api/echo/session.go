package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core/session"
)

type sessionApi struct {
	repo       session.Repository
	validate   *validator.Validate
	translator ut.Translator
}

// registerSessionAPI mounts the session routes. Updates are only served at
// PUT /sessions/update/:id. Exclusivity of the active session is left to the client.
func registerSessionAPI(g *echo.Group, repo session.Repository, validate *validator.Validate, translator ut.Translator) {
	api := sessionApi{
		repo:       repo,
		validate:   validate,
		translator: translator,
	}

	sg := g.Group("/sessions")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/active", api.retrieveActive)
	sg.PUT("/update/:id", api.update)
}

// Handlers

func (api *sessionApi) query(ctx echo.Context) error {
	pg := new(Pagination)
	pg.Bind(ctx)

	res, err := api.repo.ListSessions(ctx.Request().Context(), pg.Page, pg.Limit)
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	return ctx.JSON(http.StatusOK, listResponse{Data: res.Items, TotalPages: res.TotalPages})
}

func (api *sessionApi) retrieveActive(ctx echo.Context) error {
	sess, err := api.repo.GetActiveSession(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting active session")
	}
	if sess == nil {
		return ctx.JSON(http.StatusOK, dataResponse{Data: nil})
	}
	return ctx.JSON(http.StatusOK, dataResponse{Data: sess})
}

func (api *sessionApi) create(ctx echo.Context) error {
	var data session.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	sess, err := api.repo.CreateSession(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	return ctx.JSON(http.StatusCreated, dataResponse{Data: sess})
}

func (api *sessionApi) update(ctx echo.Context) error {
	var data session.UpdateSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSession")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	sess, err := api.repo.UpdateSession(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating session")
	}
	return ctx.JSON(http.StatusOK, dataResponse{Data: sess})
}
