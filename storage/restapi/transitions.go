package restrepos

import (
	"context"

	"github.com/trezcool/masomo-rollover/core/transition"
	"github.com/trezcool/masomo-rollover/services/rest"
)

type transitionGateway struct {
	api *restsvc.Caller
}

var _ transition.Gateway = (*transitionGateway)(nil)

func NewTransitionGateway(api *restsvc.Caller) transition.Gateway {
	return &transitionGateway{api: api}
}

func (gw transitionGateway) SubmitTransition(ctx context.Context, req transition.Request) (transition.Response, error) {
	resp, err := gw.api.Call(ctx,
		restsvc.Post("/students/session-transition", req),
		restsvc.Post("/sessions/transition", req),
		restsvc.Put("/students/session-transition", req),
	)
	if err != nil {
		return transition.Response{}, err
	}

	res := transition.Response{Success: true}
	ok, err := restsvc.DecodeOptional(resp.Body, &res)
	if err != nil {
		return transition.Response{}, err
	}
	if !ok { // 2xx with no body
		res.Success = true
	}
	return res, nil
}
