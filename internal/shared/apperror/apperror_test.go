package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, httpErr.Status)
		assert.Equal(t, apperror.CodeForbidden, httpErr.Code)
		assert.Nil(t, httpErr.Details)
	})

	t.Run("wrapped app error is found in chain", func(t *testing.T) {
		err := fmt.Errorf("review: %w", apperror.ErrNotFound)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "pq")
	})
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		LeaveType string `json:"leave_type" validate:"required,oneof=casual sick annual"`
		Reason    string `json:"reason" validate:"required"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string { return fld.Tag.Get("json") })

	t.Run("required", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{LeaveType: "casual"}))

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
		assert.Equal(t, "Reason is required", err.Error())
	})

	t.Run("oneof", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{LeaveType: "holiday", Reason: "x"}))

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "Leave Type must be one of")
	})

	t.Run("non validator error", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("unexpected EOF"))

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})
}
