package reimbursement

import (
	"github.com/prakhar-sonii/employee-management-system/internal/employee"

	"github.com/shopspring/decimal"
)

type ApplyClaimRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required,oneof=travel food accommodation equipment medical other"`
	Description string           `json:"description" binding:"required"`
}

type ReviewClaimRequest struct {
	Status     string `json:"status"`
	ReviewNote string `json:"review_note"`
}

type ClaimResponse struct {
	ID          string                    `json:"id"`
	EmployeeID  string                    `json:"employee_id"`
	Employee    *employee.SummaryResponse `json:"employee,omitempty"`
	Amount      decimal.Decimal           `json:"amount"`
	Category    string                    `json:"category"`
	Description string                    `json:"description"`
	Status      string                    `json:"status"`
	ReviewedBy  *employee.SummaryResponse `json:"reviewed_by,omitempty"`
	ReviewNote  *string                   `json:"review_note,omitempty"`
	ReviewedAt  *string                   `json:"reviewed_at,omitempty"`
	CreatedAt   string                    `json:"created_at"`
}
