// Package approval holds the role-escalation rules shared by every request
// kind. Everything here is a pure function of roles and ids.
package approval

import (
	"github.com/prakhar-sonii/employee-management-system/internal/domain"

	"github.com/google/uuid"
)

// ReviewTarget returns the only requester role the reviewer may act on.
// Employees review nobody; managers review employees; admins review managers.
func ReviewTarget(reviewer domain.Role) (domain.Role, bool) {
	switch reviewer {
	case domain.RoleManager:
		return domain.RoleEmployee, true
	case domain.RoleAdmin:
		return domain.RoleManager, true
	default:
		return "", false
	}
}

// CanReview reports whether reviewer may move a request owned by someone
// with requester role out of pending. There is no bypass: an admin never
// reviews an employee's request directly.
func CanReview(reviewer, requester domain.Role) bool {
	target, ok := ReviewTarget(reviewer)
	return ok && requester == target
}

// CanView reports whether actor may read a record owned by ownerID. Read
// access is broader than review eligibility: reviewers see every record.
func CanView(actor domain.Actor, ownerID uuid.UUID) bool {
	if actor.Role == domain.RoleEmployee {
		return actor.ID == ownerID
	}
	return actor.IsReviewer()
}

// ListQuery carries the listing flags a caller may send.
type ListQuery struct {
	Mine        bool   `form:"mine"`
	ForApproval bool   `form:"forApproval"`
	Status      string `form:"status"`
}

// Scope describes which owners a listing is restricted to. The zero Scope
// returns every record.
type Scope struct {
	// OwnerID restricts the listing to one owner.
	OwnerID *uuid.UUID
	// RequesterRole restricts the listing to owners holding this role.
	RequesterRole domain.Role
}

// ResolveScope applies the visibility rules: employees always see only
// their own records, "mine" narrows anyone to their own records, and
// "forApproval" narrows a reviewer to the role they may review.
func ResolveScope(actor domain.Actor, q ListQuery) Scope {
	if actor.Role == domain.RoleEmployee || q.Mine || !actor.IsReviewer() {
		id := actor.ID
		return Scope{OwnerID: &id}
	}
	if q.ForApproval {
		target, _ := ReviewTarget(actor.Role)
		return Scope{RequesterRole: target}
	}
	return Scope{}
}
