package student

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Student is a server-owned student record.
type Student struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ScholarNumber string `json:"scholarNumber,omitempty"`
	ParentName    string `json:"parentName,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	ClassID       string `json:"classId"`
	SessionID     string `json:"sessionId"`
	Status        string `json:"status"`
}

func (s Student) IsActive() bool { return s.Status != StatusInactive }

// QueryFilter narrows a student listing. SessionID is optional.
type QueryFilter struct {
	ClassID   string
	SessionID string
}

// Page is one page of a student listing.
type Page struct {
	Items      []Student
	TotalPages int
}
