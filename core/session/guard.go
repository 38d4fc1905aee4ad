package session

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core"
)

// Guard keeps at most one session active by deactivating the current one before
// another is created active or activated.
//
// The protocol is two independent network calls with no transaction:
// DeactivatePrevious, then the caller's create/activate. If the second call fails,
// no session is active; if the active-session lookup is stale (concurrent
// administrators), two sessions may transiently be active. Closing that gap needs a
// server-side compare-and-swap which the client cannot build.
type Guard struct {
	repo   Repository
	logger core.Logger
}

func NewGuard(repo Repository, logger core.Logger) *Guard {
	return &Guard{repo: repo, logger: logger}
}

// DeactivatePrevious deactivates the currently active session unless there is none or
// its id equals excludeID. It returns the deactivated session, or nil if nothing changed.
// The active session is always re-fetched.
func (g *Guard) DeactivatePrevious(ctx context.Context, excludeID string) (*Session, error) {
	active, err := g.repo.GetActiveSession(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting active session")
	}
	if active == nil || (excludeID != "" && active.ID == excludeID) {
		return nil, nil
	}

	inactive := false
	deactivated, err := g.repo.UpdateSession(ctx, active.ID, UpdateSession{IsActive: &inactive})
	if err != nil {
		return nil, errors.Wrapf(err, "deactivating session %s", active.ID)
	}
	if deactivated.ID == "" {
		deactivated = *active
		deactivated.IsActive = false
	}
	g.logger.Info(fmt.Sprintf("session %q (%s) deactivated", deactivated.Name, deactivated.ID))
	return &deactivated, nil
}

// EnsureSingleActive makes room for a session to become active.
func (g *Guard) EnsureSingleActive(ctx context.Context, excludeID string) error {
	_, err := g.DeactivatePrevious(ctx, excludeID)
	return err
}

// ActivateNew sets the session active. It is the second step after DeactivatePrevious,
// whose result is passed as deactivated, and can be retried on its own.
func (g *Guard) ActivateNew(ctx context.Context, id string, deactivated *Session) (Session, error) {
	return g.activateNew(deactivated, func() (Session, error) {
		active := true
		sess, err := g.repo.UpdateSession(ctx, id, UpdateSession{IsActive: &active})
		return sess, errors.Wrapf(err, "activating session %s", id)
	})
}

// activateNew runs the create/activate step after DeactivatePrevious.
// A failure after a deactivation is reported as a *PartialActivationError.
func (g *Guard) activateNew(deactivated *Session, step func() (Session, error)) (Session, error) {
	sess, err := step()
	if err != nil {
		if deactivated != nil {
			g.logger.Warn(
				fmt.Sprintf("no active session: %q was deactivated but activation failed", deactivated.Name),
				err,
			)
			return Session{}, &PartialActivationError{Deactivated: *deactivated, Err: err}
		}
		return Session{}, err
	}
	return sess, nil
}
