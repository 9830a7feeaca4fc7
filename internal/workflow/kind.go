package workflow

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Kind plugs a concrete request type into the Engine. T is the stored
// record (a pointer embedding Base) and P is the submission payload.
type Kind[T Entity, P any] interface {
	// Name is the lowercase aggregate name used in events and metrics.
	Name() string
	New() T
	// Build validates payload and returns a record with its kind-specific
	// fields filled in. Base fields are set by the Engine.
	Build(ctx context.Context, ownerID uuid.UUID, payload P) (T, error)
	// AfterApprove runs inside the review transaction once the status
	// change has been written.
	AfterApprove(ctx context.Context, tx *sql.Tx, rec T) error
}
