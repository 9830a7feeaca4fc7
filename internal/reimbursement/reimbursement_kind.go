package reimbursement

import (
	"context"
	"database/sql"
	"strings"

	reimbursementerrors "github.com/prakhar-sonii/employee-management-system/internal/reimbursement/errors"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxAmount is the first value that no longer fits numeric(12,2).
var maxAmount = decimal.New(1, 10)

type Kind struct{}

func NewKind() *Kind {
	return &Kind{}
}

func (k *Kind) Name() string { return "reimbursement" }

func (k *Kind) New() *Claim { return &Claim{} }

func (k *Kind) Build(_ context.Context, _ uuid.UUID, req ApplyClaimRequest) (*Claim, error) {
	if req.Amount == nil {
		return nil, apperror.RequiredField("amount")
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, apperror.RequiredField("category")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperror.RequiredField("description")
	}

	amount := *req.Amount
	if !amount.IsPositive() {
		return nil, reimbursementerrors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) || amount.GreaterThanOrEqual(maxAmount) {
		return nil, reimbursementerrors.ErrAmountPrecision
	}
	category, ok := ParseCategory(req.Category)
	if !ok {
		return nil, reimbursementerrors.ErrInvalidCategory
	}

	return &Claim{
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
	}, nil
}

func (k *Kind) AfterApprove(context.Context, *sql.Tx, *Claim) error {
	return nil
}
