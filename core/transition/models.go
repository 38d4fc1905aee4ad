package transition

import (
	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/student"
)

// Entry is one student's planned transition.
type Entry struct {
	Student student.Student
	Action  Action
}

// Plan holds one entry per eligible student of the source class, in stored order.
// It lives only while the administrator edits it and is discarded after submission.
type Plan struct {
	SourceClassID   string
	TargetSessionID string
	Entries         []Entry

	source  class.Class
	classes []class.Class
}

// Candidates lists the target classes offered for kind. Transfers have none.
func (p *Plan) Candidates(kind Kind) []class.Class {
	switch kind {
	case KindPromote:
		return class.PromotionCandidates(p.classes, p.source)
	case KindRetain:
		return class.RetentionCandidates(p.classes, p.source)
	default:
		return nil
	}
}

// Classes returns every class known to the plan.
func (p *Plan) Classes() []class.Class { return p.classes }

func (p *Plan) entry(studentID string) (*Entry, error) {
	for i := range p.Entries {
		if p.Entries[i].Student.ID == studentID {
			return &p.Entries[i], nil
		}
	}
	return nil, ErrStudentNotInPlan
}

// SetAction switches a student's action. Transfer clears the target; promote and retain
// keep the current target if it is still a candidate, else take the first candidate.
func (p *Plan) SetAction(studentID string, kind Kind) error {
	if _, ok := ParseKind(string(kind)); !ok {
		return ErrUnknownKind
	}
	e, err := p.entry(studentID)
	if err != nil {
		return err
	}
	if kind == e.Action.Kind() {
		return nil
	}
	if kind == KindTransfer {
		e.Action = Transfer()
		return nil
	}

	candidates := p.Candidates(kind)
	target := e.Action.TargetClassID()
	if target == "" || !class.Contains(candidates, target) {
		target = firstID(candidates)
	}
	e.Action = withTarget(kind, target)
	return nil
}

// SetTarget changes a student's target class and keeps their action.
// Any known class is accepted so the administrator can override the defaults.
func (p *Plan) SetTarget(studentID, classID string) error {
	e, err := p.entry(studentID)
	if err != nil {
		return err
	}
	if e.Action.IsTransfer() {
		return ErrTransferTarget
	}
	if !class.Contains(p.classes, classID) {
		return ErrUnknownClass
	}
	e.Action = withTarget(e.Action.Kind(), classID)
	return nil
}

// Clone returns a copy that can be edited independently.
func (p *Plan) Clone() *Plan {
	cp := *p
	cp.Entries = append([]Entry(nil), p.Entries...)
	return &cp
}

func firstID(classes []class.Class) string {
	if len(classes) == 0 {
		return ""
	}
	return classes[0].ID
}

// Update is the wire form of an entry. TargetClassID is omitted for transfers.
type Update struct {
	StudentID     string `json:"studentId" validate:"required"`
	Action        Kind   `json:"action" validate:"required,oneof=promote retain transfer"`
	TargetClassID string `json:"targetClassId,omitempty"`
}

// Request is the batch submitted to the backend.
type Request struct {
	SessionID     string   `json:"sessionId" validate:"required"`
	SourceClassID string   `json:"sourceClassId" validate:"required"`
	Updates       []Update `json:"updates" validate:"required,min=1,dive"`
}

// Response is the backend's answer to a batch.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Result describes a submitted batch. Skipped lists the students dropped for lack of a target.
type Result struct {
	Submitted int
	Skipped   []string
}
