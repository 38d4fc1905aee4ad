package restrepos

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/services/rest"
)

type sessionRepository struct {
	api *restsvc.Caller
}

var _ session.Repository = (*sessionRepository)(nil)

func NewSessionRepository(api *restsvc.Caller) session.Repository {
	return &sessionRepository{api: api}
}

func pageQuery(page, limit int) map[string]string {
	return map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}
}

func (repo sessionRepository) ListSessions(ctx context.Context, page, limit int) (session.Page, error) {
	resp, err := repo.api.Call(ctx, restsvc.Get("/sessions", pageQuery(page, limit)))
	if err != nil {
		return session.Page{}, err
	}
	var items []session.Session
	total, err := restsvc.DecodeList(resp.Body, &items)
	if err != nil {
		return session.Page{}, err
	}
	return session.Page{Items: items, TotalPages: total}, nil
}

// GetActiveSession asks the backend for its active session. Backends without a dedicated
// route are scanned through the session listing instead.
func (repo sessionRepository) GetActiveSession(ctx context.Context) (*session.Session, error) {
	resp, err := repo.api.Call(ctx,
		restsvc.Get("/sessions/active", nil),
		restsvc.Get("/sessions/current", nil),
	)
	if err != nil {
		if restsvc.IsRoutingFailure(err) {
			return repo.scanActive(ctx)
		}
		return nil, err
	}

	var sess session.Session
	ok, err := restsvc.DecodeOptional(resp.Body, &sess)
	if err != nil {
		return nil, err
	}
	if !ok || sess.ID == "" || !sess.IsActive {
		return nil, nil
	}
	return &sess, nil
}

// maxScanPages bounds the scan against backends reporting a bogus page count.
const maxScanPages = 50

func (repo sessionRepository) scanActive(ctx context.Context) (*session.Session, error) {
	const limit = 100
	for page := 1; page <= maxScanPages; page++ {
		res, err := repo.ListSessions(ctx, page, limit)
		if err != nil {
			return nil, errors.Wrap(err, "scanning sessions for the active one")
		}
		for _, sess := range res.Items {
			if sess.IsActive {
				sess := sess
				return &sess, nil
			}
		}
		if len(res.Items) == 0 || page >= res.TotalPages {
			break
		}
	}
	return nil, nil
}

func (repo sessionRepository) CreateSession(ctx context.Context, ns session.NewSession) (session.Session, error) {
	resp, err := repo.api.Call(ctx,
		restsvc.Post("/sessions", ns),
		restsvc.Post("/sessions/create", ns),
	)
	if err != nil {
		return session.Session{}, err
	}
	var sess session.Session
	if err = restsvc.DecodeData(resp.Body, &sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

func (repo sessionRepository) UpdateSession(ctx context.Context, id string, us session.UpdateSession) (session.Session, error) {
	id = url.PathEscape(id)
	resp, err := repo.api.Call(ctx,
		restsvc.Patch("/sessions/"+id, us),
		restsvc.Put("/sessions/"+id, us),
		restsvc.Put("/sessions/update/"+id, us),
		restsvc.Post("/sessions/update/"+id, us),
	)
	if err != nil {
		return session.Session{}, err
	}
	var sess session.Session
	if err = restsvc.DecodeData(resp.Body, &sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}
