package core

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const genericErrorMessage = "something went wrong, please try again"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// UserMessage joins field errors as "field: error" pairs, sorted by field.
func (err ValidationError) UserMessage() string {
	if len(err.Fields) == 0 {
		return err.Error()
	}
	flds := make([]string, 0, len(err.Fields))
	for _, fe := range err.Fields {
		flds = append(flds, fe.Field+": "+fe.Error)
	}
	sort.Strings(flds)
	return strings.Join(flds, "; ")
}

type ArgumentError struct {
	msg string
}

func NewArgumentError(msg string) *ArgumentError {
	return &ArgumentError{msg}
}

func (err *ArgumentError) Error() string {
	return err.msg
}

// userMessager is implemented by errors that carry a human-readable message.
type userMessager interface {
	UserMessage() string
}

// UserMessage resolves err to a single message fit for the administrator:
// validation text, the server's message, or a generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var um userMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		return argErr.Error()
	}
	return genericErrorMessage
}
