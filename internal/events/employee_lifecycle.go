package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EventEmployeeRegistered  = "employee_registered"
	EventEmployeeRoleChanged = "employee_role_changed"
	EventEmployeeDeleted     = "employee_deleted"
)

type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
