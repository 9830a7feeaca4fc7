package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of positions in the approval hierarchy.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

var roles = []Role{RoleEmployee, RoleManager, RoleAdmin}

func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

func ParseRole(v string) (Role, error) {
	for _, r := range roles {
		if string(r) == v {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", v)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}

// Actor is the resolved caller every workflow operation runs on behalf of.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsReviewer() bool {
	return a.Role == RoleManager || a.Role == RoleAdmin
}
