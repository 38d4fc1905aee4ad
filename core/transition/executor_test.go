package transition

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/student"
)

type fakeGateway struct {
	requests []Request
	resp     Response
	err      error
}

func (g *fakeGateway) SubmitTransition(_ context.Context, req Request) (Response, error) {
	g.requests = append(g.requests, req)
	return g.resp, g.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestExecutor(gw Gateway) *Executor {
	validate, translator := core.NewValidator()
	return NewExecutor(gw, nopLogger{}, validate, translator)
}

func mixedPlan(t *testing.T) *Plan {
	plan := sectionedPlan()
	plan.Entries = append(plan.Entries, Entry{Student: student.Student{ID: "s3"}, Action: Promote("10a")})
	require.NoError(t, plan.SetAction("s2", KindRetain))
	require.NoError(t, plan.SetAction("s3", KindTransfer))
	return plan
}

func TestBuildRequest(t *testing.T) {
	t.Run("payload", func(t *testing.T) {
		req, res, err := BuildRequest(mixedPlan(t))
		require.NoError(t, err)
		assert.Equal(t, Request{
			SessionID:     "next",
			SourceClassID: "9a",
			Updates: []Update{
				{StudentID: "s1", Action: KindPromote, TargetClassID: "10a"},
				{StudentID: "s2", Action: KindRetain, TargetClassID: "9a"},
				{StudentID: "s3", Action: KindTransfer},
			},
		}, req)
		assert.Equal(t, Result{Submitted: 3}, res)

		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"sessionId": "next",
			"sourceClassId": "9a",
			"updates": [
				{"studentId": "s1", "action": "promote", "targetClassId": "10a"},
				{"studentId": "s2", "action": "retain", "targetClassId": "9a"},
				{"studentId": "s3", "action": "transfer"}
			]
		}`, string(data))
	})

	t.Run("non transfer entries always carry a target", func(t *testing.T) {
		req, _, err := BuildRequest(mixedPlan(t))
		require.NoError(t, err)
		for _, upd := range req.Updates {
			if upd.Action == KindTransfer {
				assert.Empty(t, upd.TargetClassID)
			} else {
				assert.NotEmpty(t, upd.TargetClassID)
			}
		}
	})

	t.Run("entries without target are skipped", func(t *testing.T) {
		plan := mixedPlan(t)
		plan.Entries[0].Action = Promote("")
		req, res, err := BuildRequest(plan)
		require.NoError(t, err)
		assert.Len(t, req.Updates, 2)
		assert.Equal(t, Result{Submitted: 2, Skipped: []string{"s1"}}, res)
	})

	tests := []struct {
		name    string
		plan    func() *Plan
		wantErr error
	}{
		{name: "no target session", plan: func() *Plan { p := sectionedPlan(); p.TargetSessionID = ""; return p }, wantErr: ErrNoTargetSession},
		{name: "no source class", plan: func() *Plan { p := sectionedPlan(); p.SourceClassID = ""; return p }, wantErr: ErrNoSourceClass},
		{name: "no students", plan: func() *Plan { p := sectionedPlan(); p.Entries = nil; return p }, wantErr: ErrNoStudents},
		{
			name: "no valid update",
			plan: func() *Plan {
				return BuildDefaultPlan("c1", "next", []class.Class{{ID: "c1", Name: "1"}}, students("c1", "cur"))
			},
			wantErr: ErrNoValidUpdates,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := BuildRequest(tt.plan())
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantErr, vErr.Err)
			assert.Equal(t, tt.wantErr.Error(), core.UserMessage(err)[len(vErr.Fields[0].Field)+2:])
		})
	}

	t.Run("nil plan", func(t *testing.T) {
		_, _, err := BuildRequest(nil)
		var argErr *core.ArgumentError
		assert.True(t, errors.As(err, &argErr))
	})
}

func TestToWire_defaultsTargetToSource(t *testing.T) {
	upd := toWire(Entry{Student: student.Student{ID: "s1"}, Action: Retain("")}, "9a")
	assert.Equal(t, Update{StudentID: "s1", Action: KindRetain, TargetClassID: "9a"}, upd)
}

func TestExecutor_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("single batch", func(t *testing.T) {
		gw := &fakeGateway{resp: Response{Success: true}}
		res, err := newTestExecutor(gw).Submit(ctx, mixedPlan(t))
		require.NoError(t, err)
		assert.Equal(t, 3, res.Submitted)
		require.Len(t, gw.requests, 1)
		assert.Len(t, gw.requests[0].Updates, 3)
	})

	t.Run("invalid plan makes no call", func(t *testing.T) {
		gw := &fakeGateway{resp: Response{Success: true}}
		plan := sectionedPlan()
		plan.Entries = nil
		_, err := newTestExecutor(gw).Submit(ctx, plan)
		assert.Error(t, err)
		assert.Empty(t, gw.requests)
	})

	t.Run("payload validation", func(t *testing.T) {
		gw := &fakeGateway{resp: Response{Success: true}}
		plan := sectionedPlan()
		plan.Entries[0].Student.ID = ""
		_, err := newTestExecutor(gw).Submit(ctx, plan)

		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "updates[0].studentId", vErr.Fields[0].Field)
		assert.Empty(t, gw.requests)
	})

	t.Run("rejected", func(t *testing.T) {
		gw := &fakeGateway{resp: Response{Success: false, Message: "session is locked"}}
		_, err := newTestExecutor(gw).Submit(ctx, mixedPlan(t))

		var rejected *RejectedError
		require.True(t, errors.As(err, &rejected))
		assert.Equal(t, "session is locked", core.UserMessage(err))
	})

	t.Run("gateway error", func(t *testing.T) {
		errBoom := errors.New("connection refused")
		gw := &fakeGateway{err: errBoom}
		_, err := newTestExecutor(gw).Submit(ctx, mixedPlan(t))
		assert.True(t, errors.Is(err, errBoom))
		assert.Len(t, gw.requests, 1)
	})
}
