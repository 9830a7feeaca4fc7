package workflow

import (
	"context"
	"database/sql"

	"github.com/prakhar-sonii/employee-management-system/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the request store for one kind. All status changes are
// conditional on the row still being pending so that concurrent reviewers
// cannot both win.
type Repository[T Entity] interface {
	WithTx(tx *sql.Tx) Repository[T]
	Create(ctx context.Context, rec T) error
	FindByID(ctx context.Context, id uuid.UUID) (T, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (T, error)
	List(ctx context.Context, f Filter) ([]T, error)
	MarkReviewed(ctx context.Context, id uuid.UUID, r Review) (bool, error)
	DeletePending(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository[T Entity] struct {
	db       *gorm.DB
	newFn    func() T
	preloads []string
}

// NewRepository builds a gorm-backed store. newFn returns an empty record
// used to resolve the table; preloads name associations expanded on reads.
func NewRepository[T Entity](db *gorm.DB, newFn func() T, preloads ...string) Repository[T] {
	return &repository[T]{db: db, newFn: newFn, preloads: preloads}
}

func (r *repository[T]) WithTx(tx *sql.Tx) Repository[T] {
	return &repository[T]{db: connection.BindTx(r.db, tx), newFn: r.newFn, preloads: r.preloads}
}

func (r *repository[T]) Create(ctx context.Context, rec T) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	rec := r.newFn()
	err := r.withPreloads(r.db.WithContext(ctx)).First(rec, "id = ?", id).Error
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

func (r *repository[T]) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (T, error) {
	rec := r.newFn()
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(rec, "id = ?", id).Error
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

func (r *repository[T]) List(ctx context.Context, f Filter) ([]T, error) {
	db := r.withPreloads(r.db.WithContext(ctx).Model(r.newFn()))
	if f.OwnerIDs != nil {
		if len(f.OwnerIDs) == 0 {
			return []T{}, nil
		}
		db = db.Where("employee_id IN ?", f.OwnerIDs)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}

	var out []T
	err := db.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository[T]) MarkReviewed(ctx context.Context, id uuid.UUID, rv Review) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(r.newFn()).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":      rv.Status,
			"reviewed_by": rv.ReviewedBy,
			"review_note": rv.Note,
			"reviewed_at": rv.At,
			"updated_at":  rv.At,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository[T]) DeletePending(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, StatusPending).
		Delete(r.newFn())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// withPreloads expands associations including soft-deleted rows, so a
// record still shows who filed and reviewed it after that account is gone.
func (r *repository[T]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range r.preloads {
		db = db.Preload(p, unscoped)
	}
	return db
}

func unscoped(db *gorm.DB) *gorm.DB { return db.Unscoped() }
