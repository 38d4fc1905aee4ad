package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/masomo-rollover/core/session"
)

type SessionRepository struct {
	db *DB
}

var _ session.Repository = (*SessionRepository)(nil)

func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (repo *SessionRepository) ListSessions(_ context.Context, page, limit int) (session.Page, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	start, end, total := paginate(len(repo.db.sessionIDs), page, limit)
	items := make([]session.Session, 0, end-start)
	for _, id := range repo.db.sessionIDs[start:end] {
		items = append(items, *repo.db.sessions[id])
	}
	return session.Page{Items: items, TotalPages: total}, nil
}

func (repo *SessionRepository) GetSession(id string) (session.Session, bool) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sess, ok := repo.db.sessions[id]; ok {
		return *sess, true
	}
	return session.Session{}, false
}

func (repo *SessionRepository) GetActiveSession(_ context.Context) (*session.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, id := range repo.db.sessionIDs {
		if sess := repo.db.sessions[id]; sess.IsActive {
			found := *sess
			return &found, nil
		}
	}
	return nil, nil
}

func (repo *SessionRepository) CreateSession(_ context.Context, ns session.NewSession) (session.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sess := session.Session{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		StartDate: ns.StartDate,
		EndDate:   ns.EndDate,
		IsActive:  ns.IsActive,
	}
	repo.db.sessions[sess.ID] = &sess
	repo.db.sessionIDs = append(repo.db.sessionIDs, sess.ID)
	return sess, nil
}

// UpdateSession applies the set fields only. Other sessions are left untouched.
func (repo *SessionRepository) UpdateSession(_ context.Context, id string, us session.UpdateSession) (session.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sess, ok := repo.db.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	if us.Name != nil {
		sess.Name = *us.Name
	}
	if us.StartDate != nil {
		sess.StartDate = *us.StartDate
	}
	if us.EndDate != nil {
		sess.EndDate = *us.EndDate
	}
	if us.IsActive != nil {
		sess.IsActive = *us.IsActive
	}
	return *sess, nil
}
