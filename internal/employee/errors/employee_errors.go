package employeeerrors

import (
	"net/http"
	"strings"

	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of: "+roleNames(),
		http.StatusBadRequest,
	)
	ErrSelfModification = apperror.New(
		apperror.CodeForbidden,
		"You cannot change your own role or delete your own account",
		http.StatusForbidden,
	)
)

func roleNames() string {
	roles := domain.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
