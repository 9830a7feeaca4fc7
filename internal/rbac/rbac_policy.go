package rbac

import "github.com/prakhar-sonii/employee-management-system/internal/domain"

type Permission struct {
	Role     domain.Role
	Resource string
	Action   string
}

// Inheritance lists child, parent pairs. Admin inherits manager which
// inherits employee.
var Inheritance = [][2]domain.Role{
	{domain.RoleManager, domain.RoleEmployee},
	{domain.RoleAdmin, domain.RoleManager},
}

var Permissions = []Permission{
	{domain.RoleEmployee, "leave", "create"},
	{domain.RoleEmployee, "leave", "read"},
	{domain.RoleEmployee, "leave", "delete"},
	{domain.RoleEmployee, "reimbursement", "create"},
	{domain.RoleEmployee, "reimbursement", "read"},
	{domain.RoleEmployee, "reimbursement", "delete"},
	{domain.RoleEmployee, "balance", "read"},

	{domain.RoleManager, "leave", "review"},
	{domain.RoleManager, "reimbursement", "review"},

	{domain.RoleAdmin, "employee", "manage"},
}
