package workflow

import (
	"context"

	"github.com/prakhar-sonii/employee-management-system/internal/domain"

	"github.com/google/uuid"
)

// Directory resolves owners' roles. RoleOf must return an error carrying
// apperror.CodeNotFound when the employee no longer exists.
type Directory interface {
	RoleOf(ctx context.Context, id uuid.UUID) (domain.Role, error)
	IDsByRole(ctx context.Context, role domain.Role) ([]uuid.UUID, error)
}

// Recorder receives workflow outcomes for metrics.
type Recorder interface {
	RequestSubmitted(kind string)
	RequestReviewed(kind string, status string)
	RequestDeleted(kind string)
}

type nopRecorder struct{}

func (nopRecorder) RequestSubmitted(string)        {}
func (nopRecorder) RequestReviewed(string, string) {}
func (nopRecorder) RequestDeleted(string)          {}
