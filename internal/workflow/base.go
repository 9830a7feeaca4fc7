// Package workflow implements the approval state machine shared by every
// request kind: apply, list, get, review and delete over records that embed
// Base.
package workflow

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus accepts any of the three workflow states.
func ParseStatus(v string) (Status, bool) {
	switch s := Status(v); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	default:
		return "", false
	}
}

// ParseDecision accepts only the two terminal states a reviewer may set.
func ParseDecision(v string) (Status, bool) {
	switch s := Status(v); s {
	case StatusApproved, StatusRejected:
		return s, true
	default:
		return "", false
	}
}

// Base carries the columns every request kind shares. The review columns
// are NULL exactly while Status is pending.
type Base struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status     Status     `gorm:"type:varchar(20);not null;default:pending"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewNote *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (b *Base) Workflow() *Base { return b }

func (b *Base) IsPending() bool { return b.Status == StatusPending }

// Review is the terminal decision written onto a pending record.
type Review struct {
	Status     Status
	ReviewedBy uuid.UUID
	Note       string
	At         time.Time
}

func (b *Base) applyReview(r Review) {
	reviewer := r.ReviewedBy
	note := r.Note
	at := r.At
	b.Status = r.Status
	b.ReviewedBy = &reviewer
	b.ReviewNote = &note
	b.ReviewedAt = &at
	b.UpdatedAt = r.At
}

// Entity is satisfied by any pointer to a struct that embeds Base.
type Entity interface {
	Workflow() *Base
}

// Filter narrows a listing. A nil OwnerIDs means every owner; a non-nil
// empty slice matches nothing.
type Filter struct {
	OwnerIDs []uuid.UUID
	Status   Status
}
