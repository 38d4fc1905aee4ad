package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type Pagination struct {
	Page  int
	Limit int
}

func (p *Pagination) Bind(ctx echo.Context) {
	p.Page, p.Limit = 1, defaultLimit
	if page, err := strconv.Atoi(ctx.QueryParam("page")); err == nil && page > 0 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(ctx.QueryParam("limit")); err == nil && limit > 0 {
		p.Limit = limit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
}

type (
	dataResponse struct {
		Data interface{} `json:"data"`
	}

	listResponse struct {
		Data       interface{} `json:"data"`
		TotalPages int         `json:"totalPages"`
	}
)
