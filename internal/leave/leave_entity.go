package leave

import (
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/balance"
	"github.com/prakhar-sonii/employee-management-system/internal/employee"
	"github.com/prakhar-sonii/employee-management-system/internal/workflow"
)

// LeaveRequest is a paid-time-off application. Days is fixed when the
// request is created and is what approval deducts.
type LeaveRequest struct {
	workflow.Base

	LeaveType balance.LeaveType `gorm:"type:varchar(20);not null"`
	StartDate time.Time         `gorm:"type:date;not null"`
	EndDate   time.Time         `gorm:"type:date;not null"`
	Days      int               `gorm:"not null"`
	Reason    string            `gorm:"type:text;not null"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
	Reviewer *employee.Employee `gorm:"foreignKey:ReviewedBy"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
