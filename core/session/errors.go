package session

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	requiredText = "this field is required"
	blankText    = "this field cannot be blank"
)

var (
	// errors
	ErrNotFound   = errors.New("session not found")
	errDatesOrder = errors.New("end date must not be before start date")
)

// PartialActivationError reports that the previously active session was deactivated
// but the follow-up create/activate call failed, leaving no session active.
// Nothing is rolled back: the administrator must retry.
type PartialActivationError struct {
	Deactivated Session
	Err         error
}

func (e *PartialActivationError) Error() string {
	return fmt.Sprintf("session %q was deactivated but activation failed: %v", e.Deactivated.Name, e.Err)
}

func (e *PartialActivationError) Unwrap() error { return e.Err }

func (e *PartialActivationError) UserMessage() string {
	return fmt.Sprintf(
		"Session %q was deactivated but the new session could not be activated, so no session is active now. Please retry.",
		e.Deactivated.Name,
	)
}
