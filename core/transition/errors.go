package transition

import "github.com/pkg/errors"

var (
	// errors
	ErrNoTargetSession  = errors.New("please select the target session")
	ErrNoSourceClass    = errors.New("please select the source class")
	ErrNoStudents       = errors.New("there are no students to transition")
	ErrNoValidUpdates   = errors.New("no valid updates prepared")
	ErrStudentNotInPlan = errors.New("student is not part of this plan")
	ErrUnknownClass     = errors.New("unknown target class")
	ErrTransferTarget   = errors.New("a transferred student has no target class")
	ErrUnknownKind      = errors.New("unknown transition action")
)

// RejectedError reports a batch the server answered with success=false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "session transition rejected"
	}
	return "session transition rejected: " + e.Message
}

func (e *RejectedError) UserMessage() string {
	if e.Message == "" {
		return "The session transition was rejected by the server."
	}
	return e.Message
}
