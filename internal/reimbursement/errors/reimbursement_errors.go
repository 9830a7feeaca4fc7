package reimbursementerrors

import (
	"net/http"

	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrAmountPrecision = apperror.New(
		apperror.CodeInvalidInput,
		"amount must have at most two decimal places and ten integer digits",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"category must be one of: travel food accommodation equipment medical other",
		http.StatusBadRequest,
	)
)
