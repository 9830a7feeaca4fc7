package leave

import (
	"github.com/prakhar-sonii/employee-management-system/internal/workflow"

	"gorm.io/gorm"
)

// NewRepository returns the leave_requests store with requester and
// reviewer expanded on reads.
func NewRepository(db *gorm.DB) workflow.Repository[*LeaveRequest] {
	return workflow.NewRepository(db, func() *LeaveRequest { return &LeaveRequest{} }, "Employee", "Reviewer")
}
