// Package workflowtest provides an in-memory request store for tests of
// code built on the workflow engine.
package workflowtest

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/prakhar-sonii/employee-management-system/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryRepository keeps records in a map guarded by a mutex. Every read
// and write goes through clone so callers never share state with the store.
type MemoryRepository[T workflow.Entity] struct {
	mu      *sync.Mutex
	records map[uuid.UUID]T
	clone   func(T) T
}

func NewMemoryRepository[T workflow.Entity](clone func(T) T, seed ...T) *MemoryRepository[T] {
	r := &MemoryRepository[T]{
		mu:      &sync.Mutex{},
		records: make(map[uuid.UUID]T),
		clone:   clone,
	}
	for _, rec := range seed {
		r.records[rec.Workflow().ID] = clone(rec)
	}
	return r
}

// WithTx returns the same store; transactional behavior is not modeled.
func (r *MemoryRepository[T]) WithTx(*sql.Tx) workflow.Repository[T] {
	return r
}

func (r *MemoryRepository[T]) Create(_ context.Context, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.Workflow().ID] = r.clone(rec)
	return nil
}

func (r *MemoryRepository[T]) FindByID(_ context.Context, id uuid.UUID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		var zero T
		return zero, gorm.ErrRecordNotFound
	}
	return r.clone(rec), nil
}

func (r *MemoryRepository[T]) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (T, error) {
	return r.FindByID(ctx, id)
}

func (r *MemoryRepository[T]) List(_ context.Context, f workflow.Filter) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owners := make(map[uuid.UUID]bool, len(f.OwnerIDs))
	for _, id := range f.OwnerIDs {
		owners[id] = true
	}

	out := make([]T, 0, len(r.records))
	for _, rec := range r.records {
		base := rec.Workflow()
		if f.OwnerIDs != nil && !owners[base.EmployeeID] {
			continue
		}
		if f.Status != "" && base.Status != f.Status {
			continue
		}
		out = append(out, r.clone(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Workflow().CreatedAt.After(out[j].Workflow().CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository[T]) MarkReviewed(_ context.Context, id uuid.UUID, rv workflow.Review) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || !rec.Workflow().IsPending() {
		return false, nil
	}

	updated := r.clone(rec)
	base := updated.Workflow()
	reviewer, note, at := rv.ReviewedBy, rv.Note, rv.At
	base.Status = rv.Status
	base.ReviewedBy = &reviewer
	base.ReviewNote = &note
	base.ReviewedAt = &at
	base.UpdatedAt = at
	r.records[id] = updated
	return true, nil
}

func (r *MemoryRepository[T]) DeletePending(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || !rec.Workflow().IsPending() {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

// Len reports how many records are stored.
func (r *MemoryRepository[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
