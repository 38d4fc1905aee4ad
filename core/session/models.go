package session

import (
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core"
)

const dateLayout = "2006-01-02"

// Date is a calendar date marshalled as YYYY-MM-DD.
// RFC 3339 timestamps are accepted on input.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, errors.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	// the calendar date as written, whatever the offset
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Session is a school-year-like period. At most one session may be active at a time.
type Session struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	IsActive  bool   `json:"isActive"`
}

// Page is one page of a session listing.
type Page struct {
	Items      []Session
	TotalPages int
}

// NewSession contains information needed to create a new Session.
type NewSession struct {
	Name      string `json:"name" validate:"required,notblank"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	IsActive  bool   `json:"isActive"`
}

func (ns *NewSession) Validate(validate *validator.Validate, translator ut.Translator) error {
	ns.Name = core.CleanString(ns.Name)
	if err := validate.Struct(ns); err != nil {
		return core.TranslateValidationError(err, translator)
	}
	// validator skips tags on struct fields: check the dates here
	var flds []core.FieldError
	if ns.StartDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "startDate", Error: requiredText})
	}
	if ns.EndDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "endDate", Error: requiredText})
	}
	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid input"), flds...)
	}
	return checkDates(ns.StartDate, ns.EndDate)
}

// UpdateSession defines what information may be provided to modify an existing Session.
// nil fields are left untouched by the server.
type UpdateSession struct {
	Name      *string `json:"name,omitempty"`
	StartDate *Date   `json:"startDate,omitempty"`
	EndDate   *Date   `json:"endDate,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

func (us *UpdateSession) Validate(validate *validator.Validate, translator ut.Translator) error {
	if us.Name != nil {
		name := core.CleanString(*us.Name)
		if name == "" {
			return core.NewValidationError(errors.New("invalid input"), core.FieldError{Field: "name", Error: blankText})
		}
		us.Name = &name
	}
	if err := validate.Struct(us); err != nil {
		return core.TranslateValidationError(err, translator)
	}
	if us.StartDate != nil && us.EndDate != nil {
		return checkDates(*us.StartDate, *us.EndDate)
	}
	return nil
}

// Activates reports whether the update sets the session active.
func (us UpdateSession) Activates() bool {
	return us.IsActive != nil && *us.IsActive
}

func checkDates(start, end Date) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start.Time) {
		return core.NewValidationError(
			errDatesOrder,
			core.FieldError{Field: "endDate", Error: errDatesOrder.Error()},
		)
	}
	return nil
}

// Find returns the session with the given id.
func Find(all []Session, id string) (Session, bool) {
	for _, s := range all {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}
