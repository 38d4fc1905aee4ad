package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/masomo-rollover/apps/api/echo"
	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/core/student"
	"github.com/trezcool/masomo-rollover/core/transition"
	restsvc "github.com/trezcool/masomo-rollover/services/rest"
	inmemdb "github.com/trezcool/masomo-rollover/storage/database/inmem"
	restrepos "github.com/trezcool/masomo-rollover/storage/restapi"
	"github.com/trezcool/masomo-rollover/tests"
)

type client struct {
	sessions *session.Service
	planner  *transition.Planner
	executor *transition.Executor
}

// newClient starts the backend over HTTP and wires the administrator's services to it.
func newClient(t *testing.T, conf *core.Config, token string) (*client, *inmemdb.DB) {
	server, db := newServer(t, conf)
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)

	logger := testutil.NewLogger()
	api, err := restsvc.NewCaller(restsvc.Options{
		BaseURL: srv.URL + "/v1",
		Token:   token,
		Timeout: conf.API.Timeout,
		Logger:  logger,
	})
	require.NoError(t, err)

	validate, translator := core.NewValidator()
	sessions := session.NewService(restrepos.NewSessionRepository(api), logger, validate, translator, conf.API.PageSize)
	return &client{
		sessions: sessions,
		planner: transition.NewPlanner(
			restrepos.NewClassRepository(api),
			restrepos.NewStudentRepository(api),
			sessions,
			conf.API.PageSize,
		),
		executor: transition.NewExecutor(restrepos.NewTransitionGateway(api), logger, validate, translator),
	}, db
}

func activeIDs(t *testing.T, db *inmemdb.DB) []string {
	page, err := inmemdb.NewSessionRepository(db).ListSessions(context.Background(), 1, 100)
	require.NoError(t, err)
	var ids []string
	for _, sess := range page.Items {
		if sess.IsActive {
			ids = append(ids, sess.ID)
		}
	}
	return ids
}

func TestClient_sessionExclusivity(t *testing.T) {
	ctx := context.Background()
	cl, db := newClient(t, testutil.NewConfig(), "")
	a := testutil.CreateSession(t, db, "2025-2026", 2025, true)
	b := testutil.CreateSession(t, db, "2026-2027", 2026, false)

	t.Run("activating through update", func(t *testing.T) {
		on := true
		got, err := cl.sessions.Update(ctx, b.ID, session.UpdateSession{IsActive: &on})
		require.NoError(t, err)
		assert.True(t, got.IsActive)
		assert.Equal(t, []string{b.ID}, activeIDs(t, db))
	})

	t.Run("creating an active session", func(t *testing.T) {
		c, err := cl.sessions.Create(ctx, session.NewSession{
			Name:      "2027-2028",
			StartDate: session.NewDate(2027, time.July, 1),
			EndDate:   session.NewDate(2028, time.June, 30),
			IsActive:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{c.ID}, activeIDs(t, db))
	})

	t.Run("activate", func(t *testing.T) {
		got, err := cl.sessions.Activate(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, []string{a.ID}, activeIDs(t, db))

		active, err := cl.sessions.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, a.ID, active.ID)
	})

	t.Run("reactivating the active session is a no-op deactivation", func(t *testing.T) {
		_, err := cl.sessions.Activate(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{a.ID}, activeIDs(t, db))
	})

	t.Run("unknown session", func(t *testing.T) {
		name := "2030-2031"
		_, err := cl.sessions.Update(ctx, "nope", session.UpdateSession{Name: &name})
		require.Error(t, err)
		assert.True(t, restsvc.IsRoutingFailure(err))
	})

	t.Run("query all", func(t *testing.T) {
		all, err := cl.sessions.QueryAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestClient_transition(t *testing.T) {
	ctx := context.Background()
	cl, db := newClient(t, testutil.NewConfig(), "")
	cur := testutil.CreateSession(t, db, "2025-2026", 2025, true)
	next := testutil.CreateSession(t, db, "2026-2027", 2026, false)
	testutil.CreateClass(db, "9a", "9", "A")
	testutil.CreateClass(db, "10a", "10", "A")
	testutil.CreateClass(db, "10b", "10", "B")
	testutil.CreateStudent(db, "s1", "Amani", "9a", cur.ID)
	testutil.CreateStudent(db, "s2", "Baraka", "9a", cur.ID)
	testutil.CreateStudent(db, "s3", "Chausiku", "9a", cur.ID)
	testutil.CreateStudent(db, "s4", "Dalia", "10a", cur.ID)

	plan, err := cl.planner.Prepare(ctx, "9a", next.ID)
	require.NoError(t, err)
	require.Len(t, plan.Entries, 3)
	for _, e := range plan.Entries {
		assert.Equal(t, transition.Promote("10a"), e.Action)
	}

	require.NoError(t, plan.SetTarget("s1", "10b"))
	require.NoError(t, plan.SetAction("s2", transition.KindRetain))
	require.NoError(t, plan.SetAction("s3", transition.KindTransfer))

	res, err := cl.executor.Submit(ctx, plan)
	require.NoError(t, err)
	assert.Equal(t, transition.Result{Submitted: 3}, res)

	assert.Equal(t, student.Student{ID: "s1", Name: "Amani", ClassID: "10b", SessionID: next.ID, Status: student.StatusActive},
		testutil.GetStudent(t, db, "s1"))
	assert.Equal(t, "9a", testutil.GetStudent(t, db, "s2").ClassID)
	s3 := testutil.GetStudent(t, db, "s3")
	assert.Equal(t, next.ID, s3.SessionID)
	assert.Equal(t, student.StatusInactive, s3.Status)

	t.Run("already transitioned students are left out", func(t *testing.T) {
		again, err := cl.planner.Prepare(ctx, "9a", next.ID)
		require.NoError(t, err)
		assert.Empty(t, again.Entries)

		_, err = cl.executor.Submit(ctx, again)
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, transition.ErrNoStudents, vErr.Err)
	})

	t.Run("rejected by the server", func(t *testing.T) {
		stale := transition.BuildDefaultPlan("9a", next.ID, plan.Classes(), []student.Student{testutil.GetStudent(t, db, "s4")})
		_, err := cl.executor.Submit(ctx, stale)
		var rejected *transition.RejectedError
		require.True(t, errors.As(err, &rejected))
		assert.Equal(t, "student s4 is not in class 9a", rejected.Message)
		assert.Equal(t, "student s4 is not in class 9a", core.UserMessage(err))
	})

	t.Run("default target session", func(t *testing.T) {
		defer func(now func() time.Time) { transition.NowFunc = now }(transition.NowFunc)
		transition.NowFunc = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

		plan, err := cl.planner.Prepare(ctx, "10a", "")
		require.NoError(t, err)
		assert.Equal(t, next.ID, plan.TargetSessionID)
		require.Len(t, plan.Entries, 1)
		assert.Equal(t, "s4", plan.Entries[0].Student.ID)
	})
}

func TestClient_auth(t *testing.T) {
	ctx := context.Background()
	conf := testutil.NewConfig()
	conf.Server.SecretKey = "s3cret"

	t.Run("no token", func(t *testing.T) {
		cl, db := newClient(t, conf, "")
		testutil.CreateSession(t, db, "2025-2026", 2025, true)

		_, err := cl.sessions.QueryAll(ctx)
		code, ok := restsvc.StatusCode(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "missing or malformed jwt", core.UserMessage(err))
	})

	t.Run("admin token", func(t *testing.T) {
		token, err := echoapi.GenerateToken(conf.Server.SecretKey, echoapi.GetAdminClaims(conf, time.Hour))
		require.NoError(t, err)
		cl, db := newClient(t, conf, token)
		a := testutil.CreateSession(t, db, "2025-2026", 2025, true)
		b := testutil.CreateSession(t, db, "2026-2027", 2026, false)

		// fallback routes still resolve behind the JWT middleware
		_, err = cl.sessions.Activate(ctx, b.ID)
		require.NoError(t, err)
		assert.False(t, testutil.GetSession(t, db, a.ID).IsActive)
		assert.True(t, testutil.GetSession(t, db, b.ID).IsActive)
	})
}
