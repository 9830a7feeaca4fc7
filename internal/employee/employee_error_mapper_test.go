package employee

import (
	"errors"
	"fmt"
	"testing"

	employeeerrors "github.com/prakhar-sonii/employee-management-system/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "not found", in: fmt.Errorf("find: %w", gorm.ErrRecordNotFound), want: employeeerrors.ErrEmployeeNotFound},
		{name: "translated duplicate", in: gorm.ErrDuplicatedKey, want: employeeerrors.ErrEmployeeAlreadyExists},
		{
			name: "unique email",
			in:   &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"},
			want: employeeerrors.ErrEmployeeAlreadyExists,
		},
		{
			name: "role check",
			in:   &pgconn.PgError{Code: "23514", ConstraintName: "employees_role_check"},
			want: employeeerrors.ErrInvalidRole,
		},
		{name: "other unique constraint passes through", in: &pgconn.PgError{Code: "23505", ConstraintName: "other"}},
		{name: "unknown", in: boom, want: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapRepositoryError(tt.in)
			if tt.want == nil && tt.in != nil {
				assert.Equal(t, tt.in, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
