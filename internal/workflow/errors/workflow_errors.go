package workflowerrors

import (
	"net/http"

	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to act on this request",
		http.StatusForbidden,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeAlreadyReviewed,
		"request has already been reviewed",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidStatus,
		"status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of: pending approved rejected",
		http.StatusBadRequest,
	)
)
