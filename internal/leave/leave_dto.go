package leave

import "github.com/prakhar-sonii/employee-management-system/internal/employee"

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=casual sick annual"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type ReviewLeaveRequest struct {
	Status     string `json:"status"`
	ReviewNote string `json:"review_note"`
}

type LeaveResponse struct {
	ID         string                    `json:"id"`
	EmployeeID string                    `json:"employee_id"`
	Employee   *employee.SummaryResponse `json:"employee,omitempty"`
	LeaveType  string                    `json:"leave_type"`
	StartDate  string                    `json:"start_date"`
	EndDate    string                    `json:"end_date"`
	Days       int                       `json:"days"`
	Reason     string                    `json:"reason"`
	Status     string                    `json:"status"`
	ReviewedBy *employee.SummaryResponse `json:"reviewed_by,omitempty"`
	ReviewNote *string                   `json:"review_note,omitempty"`
	ReviewedAt *string                   `json:"reviewed_at,omitempty"`
	CreatedAt  string                    `json:"created_at"`
}
