package events

import "time"

const RequestLifecycleTopic = "hr.approval.requests.v1"

const (
	EventRequestSubmitted = "request_submitted"
	EventRequestReviewed  = "request_reviewed"
	EventRequestDeleted   = "request_deleted"
)

// RequestLifecycleEvent is published for every state change of a leave or
// reimbursement request. Kind is the aggregate name ("leave" or
// "reimbursement").
type RequestLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	Kind       string    `json:"kind"`
	RecordID   string    `json:"record_id"`
	EmployeeID string    `json:"employee_id"`
	ActorID    string    `json:"actor_id"`
	Status     string    `json:"status"`
	ReviewNote string    `json:"review_note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
