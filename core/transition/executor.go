package transition

import (
	"context"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core"
)

// Gateway is the backend accepting transition batches.
type Gateway interface {
	SubmitTransition(ctx context.Context, req Request) (Response, error)
}

// Executor validates plans and submits them as one batch.
type Executor struct {
	gateway    Gateway
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
}

func NewExecutor(gateway Gateway, logger core.Logger, validate *validator.Validate, translator ut.Translator) *Executor {
	InitValidators(validate, translator)
	return &Executor{gateway: gateway, logger: logger, validate: validate, translator: translator}
}

// BuildRequest validates plan and assembles its wire payload without any network call.
// Non-transfer entries with no target class are dropped and reported in Result.Skipped.
func BuildRequest(plan *Plan) (Request, Result, error) {
	var res Result
	if plan == nil {
		return Request{}, res, core.NewArgumentError("plan is required")
	}
	if plan.TargetSessionID == "" {
		return Request{}, res, newValidationError("sessionId", ErrNoTargetSession)
	}
	if plan.SourceClassID == "" {
		return Request{}, res, newValidationError("sourceClassId", ErrNoSourceClass)
	}
	if len(plan.Entries) == 0 {
		return Request{}, res, newValidationError("updates", ErrNoStudents)
	}

	req := Request{
		SessionID:     plan.TargetSessionID,
		SourceClassID: plan.SourceClassID,
		Updates:       make([]Update, 0, len(plan.Entries)),
	}
	for _, e := range plan.Entries {
		if !e.Action.IsTransfer() && e.Action.TargetClassID() == "" {
			res.Skipped = append(res.Skipped, e.Student.ID)
			continue
		}
		req.Updates = append(req.Updates, toWire(e, plan.SourceClassID))
	}
	if len(req.Updates) == 0 {
		return Request{}, res, newValidationError("updates", ErrNoValidUpdates)
	}
	res.Submitted = len(req.Updates)
	return req, res, nil
}

// toWire renders an entry; non-transfer actions always carry a concrete target class.
func toWire(e Entry, sourceClassID string) Update {
	upd := Update{StudentID: e.Student.ID, Action: e.Action.Kind()}
	if e.Action.IsTransfer() {
		return upd
	}
	upd.TargetClassID = e.Action.TargetClassID()
	if upd.TargetClassID == "" {
		upd.TargetClassID = sourceClassID
	}
	return upd
}

// Submit validates plan and sends it as a single batch mutation.
func (ex *Executor) Submit(ctx context.Context, plan *Plan) (Result, error) {
	req, res, err := BuildRequest(plan)
	if err != nil {
		return Result{}, err
	}
	if err = ex.validate.Struct(req); err != nil {
		return Result{}, core.TranslateValidationError(err, ex.translator)
	}
	if len(res.Skipped) > 0 {
		ex.logger.Warn(fmt.Sprintf("%d student(s) skipped: no target class", len(res.Skipped)), res.Skipped)
	}

	resp, err := ex.gateway.SubmitTransition(ctx, req)
	if err != nil {
		return Result{}, errors.Wrap(err, "submitting session transition")
	}
	if !resp.Success {
		return Result{}, &RejectedError{Message: resp.Message}
	}

	ex.logger.Info(fmt.Sprintf(
		"session transition submitted: %d student(s) from class %s into session %s",
		res.Submitted, req.SourceClassID, req.SessionID,
	))
	return res, nil
}

func newValidationError(field string, err error) error {
	return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
}
