package transition

import "strings"

// Kind names what happens to a student at rollover.
type Kind string

// Kinds
const (
	KindPromote  Kind = "promote"
	KindRetain   Kind = "retain"
	KindTransfer Kind = "transfer"
)

var Kinds = []Kind{KindPromote, KindRetain, KindTransfer}

func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindPromote, KindRetain, KindTransfer:
		return k, true
	default:
		return "", false
	}
}

// Action is a student's transition: Promote or Retain into a target class, or Transfer
// out of the progression with no class. Build it with Promote, Retain or Transfer.
type Action struct {
	kind          Kind
	targetClassID string
}

func Promote(targetClassID string) Action {
	return Action{kind: KindPromote, targetClassID: targetClassID}
}

func Retain(targetClassID string) Action {
	return Action{kind: KindRetain, targetClassID: targetClassID}
}

func Transfer() Action {
	return Action{kind: KindTransfer}
}

func (a Action) Kind() Kind { return a.kind }

// TargetClassID is empty for transfers.
func (a Action) TargetClassID() string { return a.targetClassID }

func (a Action) IsTransfer() bool { return a.kind == KindTransfer }

func (a Action) String() string {
	if a.IsTransfer() || a.targetClassID == "" {
		return string(a.kind)
	}
	return string(a.kind) + " -> " + a.targetClassID
}

func withTarget(kind Kind, targetClassID string) Action {
	switch kind {
	case KindRetain:
		return Retain(targetClassID)
	case KindTransfer:
		return Transfer()
	default:
		return Promote(targetClassID)
	}
}
