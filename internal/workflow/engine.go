package workflow

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/approval"
	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/events"
	"github.com/prakhar-sonii/employee-management-system/internal/messaging/kafka"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/contextutil"
	workflowerrors "github.com/prakhar-sonii/employee-management-system/internal/workflow/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewInput is the reviewer's decision. Status must be approved or
// rejected; an empty note is stored as "".
type ReviewInput struct {
	Status string
	Note   string
}

type Engine[T Entity, P any] struct {
	db       *sql.DB
	repo     Repository[T]
	kind     Kind[T, P]
	dir      Directory
	outbox   kafka.OutboxRepository
	recorder Recorder
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*options)

type options struct {
	outbox   kafka.OutboxRepository
	recorder Recorder
	now      func() time.Time
	logger   *zap.Logger
}

// WithOutbox queues a lifecycle event in the same transaction as every
// state change.
func WithOutbox(repo kafka.OutboxRepository) Option {
	return func(o *options) { o.outbox = repo }
}

func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func NewEngine[T Entity, P any](db *sql.DB, repo Repository[T], kind Kind[T, P], dir Directory, opts ...Option) *Engine[T, P] {
	o := options{
		recorder: nopRecorder{},
		now:      func() time.Time { return time.Now().UTC() },
		logger:   zap.L(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T, P]{
		db:       db,
		repo:     repo,
		kind:     kind,
		dir:      dir,
		outbox:   o.outbox,
		recorder: o.recorder,
		now:      o.now,
		logger:   o.logger.Named(kind.Name() + ".workflow"),
	}
}

func (e *Engine[T, P]) Kind() Kind[T, P] { return e.kind }

// Apply validates payload through the kind and stores a pending record
// owned by the actor.
func (e *Engine[T, P]) Apply(ctx context.Context, actor domain.Actor, payload P) (T, error) {
	var zero T
	rid := contextutil.GetRequestID(ctx)
	e.logger.Debug("apply requested",
		zap.String("request_id", rid),
		zap.String("employee_id", actor.ID.String()),
	)

	rec, err := e.kind.Build(ctx, actor.ID, payload)
	if err != nil {
		e.logger.Warn("apply rejected",
			zap.String("employee_id", actor.ID.String()),
			zap.Error(err),
		)
		return zero, err
	}

	now := e.now()
	base := rec.Workflow()
	base.ID = uuid.New()
	base.EmployeeID = actor.ID
	base.Status = StatusPending
	base.ReviewedBy = nil
	base.ReviewNote = nil
	base.ReviewedAt = nil
	base.CreatedAt = now
	base.UpdatedAt = now

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		e.logger.Error("apply begin tx failed", zap.Error(err))
		return zero, err
	}
	defer tx.Rollback()

	if err := e.repo.WithTx(tx).Create(ctx, rec); err != nil {
		e.logger.Error("apply persist failed", zap.Error(err))
		return zero, err
	}
	if err := e.enqueue(ctx, tx, events.EventRequestSubmitted, base, actor.ID); err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		e.logger.Error("apply commit failed", zap.Error(err))
		return zero, err
	}

	e.recorder.RequestSubmitted(e.kind.Name())
	e.logger.Info("apply success",
		zap.String("request_id", rid),
		zap.String("record_id", base.ID.String()),
		zap.String("employee_id", actor.ID.String()),
	)
	return e.reload(ctx, rec), nil
}

// List returns the records visible to actor, newest first.
func (e *Engine[T, P]) List(ctx context.Context, actor domain.Actor, q approval.ListQuery) ([]T, error) {
	var f Filter
	if q.Status != "" {
		status, ok := ParseStatus(q.Status)
		if !ok {
			return nil, workflowerrors.ErrInvalidStatusFilter
		}
		f.Status = status
	}

	scope := approval.ResolveScope(actor, q)
	switch {
	case scope.OwnerID != nil:
		f.OwnerIDs = []uuid.UUID{*scope.OwnerID}
	case scope.RequesterRole != "":
		ids, err := e.dir.IDsByRole(ctx, scope.RequesterRole)
		if err != nil {
			e.logger.Error("list resolve requester ids failed",
				zap.String("role", scope.RequesterRole.String()),
				zap.Error(err),
			)
			return nil, err
		}
		f.OwnerIDs = append([]uuid.UUID{}, ids...)
	}

	recs, err := e.repo.List(ctx, f)
	if err != nil {
		e.logger.Error("list failed", zap.Error(err))
		return nil, err
	}
	return recs, nil
}

func (e *Engine[T, P]) GetByID(ctx context.Context, actor domain.Actor, id string) (T, error) {
	var zero T
	recID, err := uuid.Parse(id)
	if err != nil {
		return zero, workflowerrors.ErrRequestNotFound
	}

	rec, err := e.repo.FindByID(ctx, recID)
	if err != nil {
		return zero, e.mapFindError(err)
	}
	if !approval.CanView(actor, rec.Workflow().EmployeeID) {
		return zero, workflowerrors.ErrForbidden
	}
	return rec, nil
}

// Review moves a pending record to approved or rejected. The row is locked
// for the duration of the transaction and the status update is conditional,
// so of two concurrent reviews exactly one succeeds.
func (e *Engine[T, P]) Review(ctx context.Context, actor domain.Actor, id string, in ReviewInput) (T, error) {
	var zero T
	rid := contextutil.GetRequestID(ctx)
	e.logger.Debug("review requested",
		zap.String("request_id", rid),
		zap.String("record_id", id),
		zap.String("reviewer_id", actor.ID.String()),
		zap.String("status", in.Status),
	)

	decision, ok := ParseDecision(in.Status)
	if !ok {
		return zero, workflowerrors.ErrInvalidStatus
	}
	recID, err := uuid.Parse(id)
	if err != nil {
		return zero, workflowerrors.ErrRequestNotFound
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		e.logger.Error("review begin tx failed", zap.Error(err))
		return zero, err
	}
	defer tx.Rollback()

	qrepo := e.repo.WithTx(tx)
	rec, err := qrepo.FindByIDForUpdate(ctx, recID)
	if err != nil {
		return zero, e.mapFindError(err)
	}
	base := rec.Workflow()
	if !base.IsPending() {
		return zero, workflowerrors.ErrAlreadyReviewed
	}

	requesterRole, err := e.dir.RoleOf(ctx, base.EmployeeID)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			e.logger.Warn("review requester missing",
				zap.String("record_id", id),
				zap.String("employee_id", base.EmployeeID.String()),
			)
			return zero, workflowerrors.ErrForbidden
		}
		e.logger.Error("review resolve requester role failed", zap.Error(err))
		return zero, err
	}
	if !approval.CanReview(actor.Role, requesterRole) {
		e.logger.Warn("review forbidden",
			zap.String("record_id", id),
			zap.String("reviewer_role", actor.Role.String()),
			zap.String("requester_role", requesterRole.String()),
		)
		return zero, workflowerrors.ErrForbidden
	}

	rv := Review{Status: decision, ReviewedBy: actor.ID, Note: in.Note, At: e.now()}
	updated, err := qrepo.MarkReviewed(ctx, recID, rv)
	if err != nil {
		e.logger.Error("review persist failed", zap.String("record_id", id), zap.Error(err))
		return zero, err
	}
	if !updated {
		return zero, workflowerrors.ErrAlreadyReviewed
	}
	base.applyReview(rv)

	if decision == StatusApproved {
		if err := e.kind.AfterApprove(ctx, tx, rec); err != nil {
			e.logger.Error("review approval side effect failed",
				zap.String("record_id", id),
				zap.Error(err),
			)
			return zero, err
		}
	}
	if err := e.enqueue(ctx, tx, events.EventRequestReviewed, base, actor.ID); err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		e.logger.Error("review commit failed", zap.String("record_id", id), zap.Error(err))
		return zero, err
	}

	e.recorder.RequestReviewed(e.kind.Name(), string(decision))
	e.logger.Info("review success",
		zap.String("request_id", rid),
		zap.String("record_id", id),
		zap.String("status", string(decision)),
	)
	return e.reload(ctx, rec), nil
}

// Delete removes a pending record. Only its owner may do so.
func (e *Engine[T, P]) Delete(ctx context.Context, actor domain.Actor, id string) error {
	recID, err := uuid.Parse(id)
	if err != nil {
		return workflowerrors.ErrRequestNotFound
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		e.logger.Error("delete begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qrepo := e.repo.WithTx(tx)
	rec, err := qrepo.FindByIDForUpdate(ctx, recID)
	if err != nil {
		return e.mapFindError(err)
	}
	base := rec.Workflow()
	if base.EmployeeID != actor.ID {
		return workflowerrors.ErrForbidden
	}
	if !base.IsPending() {
		return workflowerrors.ErrAlreadyReviewed
	}

	deleted, err := qrepo.DeletePending(ctx, recID)
	if err != nil {
		e.logger.Error("delete persist failed", zap.String("record_id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return workflowerrors.ErrAlreadyReviewed
	}
	if err := e.enqueue(ctx, tx, events.EventRequestDeleted, base, actor.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		e.logger.Error("delete commit failed", zap.String("record_id", id), zap.Error(err))
		return err
	}

	e.recorder.RequestDeleted(e.kind.Name())
	e.logger.Info("delete success", zap.String("record_id", id))
	return nil
}

func (e *Engine[T, P]) enqueue(ctx context.Context, tx *sql.Tx, eventType string, base *Base, actorID uuid.UUID) error {
	if e.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.RequestLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		Kind:       e.kind.Name(),
		RecordID:   base.ID.String(),
		EmployeeID: base.EmployeeID.String(),
		ActorID:    actorID.String(),
		Status:     string(base.Status),
		OccurredAt: e.now(),
	}
	if base.ReviewNote != nil {
		event.ReviewNote = *base.ReviewNote
	}

	payload, err := json.Marshal(event)
	if err != nil {
		e.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	if err := e.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: e.kind.Name(),
		AggregateID:   base.ID.String(),
		EventType:     eventType,
		Topic:         events.RequestLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		e.logger.Error("outbox persist failed",
			zap.String("record_id", base.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// reload fetches rec again with its associations. The in-memory record is
// returned if the read fails since the write has already committed.
func (e *Engine[T, P]) reload(ctx context.Context, rec T) T {
	fresh, err := e.repo.FindByID(ctx, rec.Workflow().ID)
	if err != nil {
		e.logger.Warn("reload after commit failed",
			zap.String("record_id", rec.Workflow().ID.String()),
			zap.Error(err),
		)
		return rec
	}
	return fresh
}

func (e *Engine[T, P]) mapFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workflowerrors.ErrRequestNotFound
	}
	e.logger.Error("find request failed", zap.Error(err))
	return err
}
