package transition

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/core/student"
)

var NowFunc = time.Now // mockable

// BuildDefaultPlan plans a transition of the source class's students into the target session.
// Students already recorded in the target session have been transitioned before and are
// left out. Every entry defaults to Promote into the first promotion candidate.
func BuildDefaultPlan(sourceClassID, targetSessionID string, classes []class.Class, students []student.Student) *Plan {
	source, ok := class.Find(classes, sourceClassID)
	if !ok {
		source = class.Class{ID: sourceClassID}
	}
	plan := &Plan{
		SourceClassID:   sourceClassID,
		TargetSessionID: targetSessionID,
		Entries:         make([]Entry, 0, len(students)),
		source:          source,
		classes:         append([]class.Class(nil), classes...),
	}

	target := firstID(plan.Candidates(KindPromote))
	for _, s := range students {
		if targetSessionID != "" && s.SessionID == targetSessionID {
			continue
		}
		plan.Entries = append(plan.Entries, Entry{Student: s, Action: Promote(target)})
	}
	return plan
}

// DefaultTargetSession picks the session that most likely is the next school year:
// the earliest start date after now, else the first inactive session, else the first one.
func DefaultTargetSession(sessions []session.Session, now time.Time) (session.Session, bool) {
	if len(sessions) == 0 {
		return session.Session{}, false
	}

	var next *session.Session
	for i := range sessions {
		s := &sessions[i]
		if s.StartDate.IsZero() || !s.StartDate.After(now) {
			continue
		}
		if next == nil || s.StartDate.Before(next.StartDate.Time) {
			next = s
		}
	}
	if next != nil {
		return *next, true
	}

	for _, s := range sessions {
		if !s.IsActive {
			return s, true
		}
	}
	return sessions[0], true
}

// SessionLister lists every session.
type SessionLister interface {
	QueryAll(ctx context.Context) ([]session.Session, error)
}

// Planner builds plans from freshly fetched classes, sessions and students.
type Planner struct {
	classes  class.Repository
	students student.Repository
	sessions SessionLister
	pageSize int
}

func NewPlanner(classes class.Repository, students student.Repository, sessions SessionLister, pageSize int) *Planner {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Planner{classes: classes, students: students, sessions: sessions, pageSize: pageSize}
}

// Prepare fetches the current state and builds the default plan. An empty targetSessionID
// selects DefaultTargetSession.
func (p *Planner) Prepare(ctx context.Context, sourceClassID, targetSessionID string) (*Plan, error) {
	sourceClassID = core.CleanString(sourceClassID)
	targetSessionID = core.CleanString(targetSessionID)
	if sourceClassID == "" {
		return nil, core.NewValidationError(ErrNoSourceClass, core.FieldError{Field: "sourceClassId", Error: ErrNoSourceClass.Error()})
	}

	sessions, err := p.sessions.QueryAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	if targetSessionID == "" {
		sess, ok := DefaultTargetSession(sessions, NowFunc())
		if !ok {
			return nil, core.NewValidationError(ErrNoTargetSession, core.FieldError{Field: "sessionId", Error: ErrNoTargetSession.Error()})
		}
		targetSessionID = sess.ID
	} else if _, ok := session.Find(sessions, targetSessionID); !ok {
		return nil, core.NewValidationError(session.ErrNotFound, core.FieldError{Field: "sessionId", Error: session.ErrNotFound.Error()})
	}

	classes, err := class.QueryAll(ctx, p.classes, p.pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	if !class.Contains(classes, sourceClassID) {
		return nil, core.NewValidationError(ErrNoSourceClass, core.FieldError{Field: "sourceClassId", Error: "unknown source class"})
	}

	students, err := student.QueryAll(ctx, p.students, student.QueryFilter{ClassID: sourceClassID}, p.pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return BuildDefaultPlan(sourceClassID, targetSessionID, classes, students), nil
}
