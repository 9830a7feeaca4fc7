package reimbursement_test

import (
	"context"
	"testing"

	"github.com/prakhar-sonii/employee-management-system/internal/reimbursement"
	reimbursementerrors "github.com/prakhar-sonii/employee-management-system/internal/reimbursement/errors"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func validClaim() reimbursement.ApplyClaimRequest {
	return reimbursement.ApplyClaimRequest{
		Amount:      amount("1250.50"),
		Category:    "travel",
		Description: "client visit",
	}
}

func TestKind_Build(t *testing.T) {
	ctx := context.Background()
	kind := reimbursement.NewKind()

	t.Run("success", func(t *testing.T) {
		rec, err := kind.Build(ctx, uuid.New(), validClaim())

		assert.NoError(t, err)
		assert.True(t, rec.Amount.Equal(decimal.RequireFromString("1250.5")))
		assert.Equal(t, reimbursement.CategoryTravel, rec.Category)
		assert.Equal(t, "client visit", rec.Description)
	})

	t.Run("largest representable amount", func(t *testing.T) {
		req := validClaim()
		req.Amount = amount("9999999999.99")

		_, err := kind.Build(ctx, uuid.New(), req)

		assert.NoError(t, err)
	})

	cases := []struct {
		name   string
		mutate func(*reimbursement.ApplyClaimRequest)
		want   error
	}{
		{"missing amount", func(r *reimbursement.ApplyClaimRequest) { r.Amount = nil }, nil},
		{"zero amount", func(r *reimbursement.ApplyClaimRequest) { r.Amount = amount("0") }, reimbursementerrors.ErrInvalidAmount},
		{"negative amount", func(r *reimbursement.ApplyClaimRequest) { r.Amount = amount("-5") }, reimbursementerrors.ErrInvalidAmount},
		{"too many decimals", func(r *reimbursement.ApplyClaimRequest) { r.Amount = amount("10.005") }, reimbursementerrors.ErrAmountPrecision},
		{"too large", func(r *reimbursement.ApplyClaimRequest) { r.Amount = amount("10000000000") }, reimbursementerrors.ErrAmountPrecision},
		{"unknown category", func(r *reimbursement.ApplyClaimRequest) { r.Category = "gifts" }, reimbursementerrors.ErrInvalidCategory},
		{"blank description", func(r *reimbursement.ApplyClaimRequest) { r.Description = " " }, nil},
	}
	for _, tc := range cases {
		t.Run("negative "+tc.name, func(t *testing.T) {
			req := validClaim()
			tc.mutate(&req)

			_, err := kind.Build(ctx, uuid.New(), req)

			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
			assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
		})
	}

	t.Run("approval has no side effect", func(t *testing.T) {
		assert.NoError(t, kind.AfterApprove(ctx, nil, kind.New()))
		assert.Equal(t, "reimbursement", kind.Name())
	})
}
