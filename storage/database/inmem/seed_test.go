package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/core/student"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db := Open()
	require.NoError(t, Seed(db, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)))

	sessions, err := NewSessionRepository(db).ListSessions(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, sessions.Items, 2)
	cur, next := sessions.Items[0], sessions.Items[1]
	assert.Equal(t, "2025-2026", cur.Name)
	assert.True(t, cur.IsActive)
	assert.Equal(t, session.NewDate(2025, time.July, 1), cur.StartDate)
	assert.Equal(t, "2026-2027", next.Name)
	assert.False(t, next.IsActive)

	classes, err := NewClassRepository(db).ListClasses(ctx, 1, 100)
	require.NoError(t, err)
	require.Len(t, classes.Items, 13)
	assert.Equal(t, "Nursery", classes.Items[0].Name)
	two := class.PromotionCandidates(classes.Items, classes.Items[1])
	assert.Len(t, two, 2)
	assert.Equal(t, "2", two[0].Name)

	students, err := NewStudentRepository(db).ListStudents(ctx, student.QueryFilter{ClassID: classes.Items[1].ID}, 1, 100)
	require.NoError(t, err)
	require.Len(t, students.Items, 3)
	assert.Equal(t, cur.ID, students.Items[0].SessionID)
	assert.Equal(t, "1004", students.Items[0].ScholarNumber)

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		require.NoError(t, Seed(db, time.Now()))
		page, err := NewSessionRepository(db).ListSessions(ctx, 1, 10)
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})

	t.Run("school year starts in July", func(t *testing.T) {
		db := Open()
		require.NoError(t, Seed(db, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)))
		active, err := NewSessionRepository(db).GetActiveSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, "2026-2027", active.Name)
	})
}
