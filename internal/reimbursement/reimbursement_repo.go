package reimbursement

import (
	"github.com/prakhar-sonii/employee-management-system/internal/workflow"

	"gorm.io/gorm"
)

func NewRepository(db *gorm.DB) workflow.Repository[*Claim] {
	return workflow.NewRepository(db, func() *Claim { return &Claim{} }, "Employee", "Reviewer")
}
