package session

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core"
)

// maxPages bounds paging loops against backends reporting a bogus page count.
const maxPages = 1000

type (
	// Repository is the backend holding sessions.
	Repository interface {
		ListSessions(ctx context.Context, page, limit int) (Page, error)
		// GetActiveSession returns nil when no session is active.
		GetActiveSession(ctx context.Context) (*Session, error)
		CreateSession(ctx context.Context, ns NewSession) (Session, error)
		UpdateSession(ctx context.Context, id string, us UpdateSession) (Session, error)
	}

	Service struct {
		repo       Repository
		guard      *Guard
		pageSize   int
		validate   *validator.Validate
		translator ut.Translator
	}
)

func NewService(
	repo Repository,
	logger core.Logger,
	validate *validator.Validate,
	translator ut.Translator,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Service{
		repo:       repo,
		guard:      NewGuard(repo, logger),
		pageSize:   pageSize,
		validate:   validate,
		translator: translator,
	}
}

func (svc *Service) Guard() *Guard { return svc.guard }

// QueryAll fetches every page of sessions, preserving the server's order.
func (svc *Service) QueryAll(ctx context.Context) ([]Session, error) {
	all := make([]Session, 0)
	for page := 1; page <= maxPages; page++ {
		res, err := svc.repo.ListSessions(ctx, page, svc.pageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "listing sessions (page %d)", page)
		}
		all = append(all, res.Items...)
		if len(res.Items) == 0 || page >= res.TotalPages {
			break
		}
	}
	return all, nil
}

func (svc *Service) GetActive(ctx context.Context) (*Session, error) {
	return svc.repo.GetActiveSession(ctx)
}

// Create creates a session. An active session first deactivates the current one.
func (svc *Service) Create(ctx context.Context, ns NewSession) (Session, error) {
	if err := ns.Validate(svc.validate, svc.translator); err != nil {
		return Session{}, err
	}

	var deactivated *Session
	if ns.IsActive {
		var err error
		// a brand-new session cannot be the active one: nothing to exclude
		if deactivated, err = svc.guard.DeactivatePrevious(ctx, ""); err != nil {
			return Session{}, err
		}
	}
	return svc.guard.activateNew(deactivated, func() (Session, error) {
		sess, err := svc.repo.CreateSession(ctx, ns)
		return sess, errors.Wrap(err, "creating session")
	})
}

// Update modifies a session. Setting it active first deactivates any other active session.
func (svc *Service) Update(ctx context.Context, id string, us UpdateSession) (Session, error) {
	id = core.CleanString(id)
	if id == "" {
		return Session{}, core.NewArgumentError("session id is required")
	}
	if err := us.Validate(svc.validate, svc.translator); err != nil {
		return Session{}, err
	}

	var deactivated *Session
	if us.Activates() {
		var err error
		if deactivated, err = svc.guard.DeactivatePrevious(ctx, id); err != nil {
			return Session{}, err
		}
	}
	return svc.guard.activateNew(deactivated, func() (Session, error) {
		sess, err := svc.repo.UpdateSession(ctx, id, us)
		return sess, errors.Wrapf(err, "updating session %s", id)
	})
}

// Activate makes the session the only active one.
func (svc *Service) Activate(ctx context.Context, id string) (Session, error) {
	id = core.CleanString(id)
	if id == "" {
		return Session{}, core.NewArgumentError("session id is required")
	}
	deactivated, err := svc.guard.DeactivatePrevious(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return svc.guard.ActivateNew(ctx, id, deactivated)
}
