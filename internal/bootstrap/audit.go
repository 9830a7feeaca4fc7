package bootstrap

import "context"

// AuditLog is one entry of the audit trail. Action is an upper snake case
// verb such as LEAVE_REQUEST_REVIEWED.
type AuditLog struct {
	Action    string
	Message   string
	RequestID string
	ActorID   string
	Meta      map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
