package workflow_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/approval"
	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/events"
	"github.com/prakhar-sonii/employee-management-system/internal/messaging/kafka"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
	"github.com/prakhar-sonii/employee-management-system/internal/workflow"
	workflowerrors "github.com/prakhar-sonii/employee-management-system/internal/workflow/errors"
	"github.com/prakhar-sonii/employee-management-system/internal/workflow/workflowtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type ticket struct {
	workflow.Base
	Title string
}

type ticketPayload struct {
	Title string
}

type ticketKind struct {
	mu         sync.Mutex
	approved   []uuid.UUID
	approveErr error
}

func (k *ticketKind) Name() string { return "ticket" }

func (k *ticketKind) New() *ticket { return &ticket{} }

func (k *ticketKind) Build(_ context.Context, _ uuid.UUID, p ticketPayload) (*ticket, error) {
	if p.Title == "" {
		return nil, apperror.RequiredField("title")
	}
	return &ticket{Title: p.Title}, nil
}

func (k *ticketKind) AfterApprove(_ context.Context, tx *sql.Tx, t *ticket) error {
	if tx == nil {
		return errors.New("approval side effect outside transaction")
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.approveErr != nil {
		return k.approveErr
	}
	k.approved = append(k.approved, t.ID)
	return nil
}

func (k *ticketKind) approvedCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.approved)
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(*sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(_ context.Context, e kafka.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) { return nil, nil }
func (f *fakeOutbox) MarkSent(context.Context, string) error                        { return nil }
func (f *fakeOutbox) MarkFailed(context.Context, string, string) error              { return nil }

type fakeRecorder struct {
	mu        sync.Mutex
	submitted int
	reviewed  map[string]int
	deleted   int
}

func (f *fakeRecorder) RequestSubmitted(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted++
}

func (f *fakeRecorder) RequestReviewed(_ string, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reviewed == nil {
		f.reviewed = map[string]int{}
	}
	f.reviewed[status]++
}

func (f *fakeRecorder) RequestDeleted(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted++
}

func steppingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Minute)
		return now
	}
}

type engineDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	engine   *workflow.Engine[*ticket, ticketPayload]
	repo     *workflowtest.MemoryRepository[*ticket]
	dir      *workflowtest.Directory
	kind     *ticketKind
	outbox   *fakeOutbox
	recorder *fakeRecorder

	employee domain.Actor
	coworker domain.Actor
	manager  domain.Actor
	manager2 domain.Actor
	admin    domain.Actor
}

func setupEngineTest(t *testing.T) *engineDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	d := &engineDeps{
		db:       db,
		sqlMock:  sqlMock,
		kind:     &ticketKind{},
		outbox:   &fakeOutbox{},
		recorder: &fakeRecorder{},
		employee: domain.Actor{ID: uuid.New(), Role: domain.RoleEmployee},
		coworker: domain.Actor{ID: uuid.New(), Role: domain.RoleEmployee},
		manager:  domain.Actor{ID: uuid.New(), Role: domain.RoleManager},
		manager2: domain.Actor{ID: uuid.New(), Role: domain.RoleManager},
		admin:    domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin},
	}
	d.dir = workflowtest.NewDirectory(map[uuid.UUID]domain.Role{
		d.employee.ID: d.employee.Role,
		d.coworker.ID: d.coworker.Role,
		d.manager.ID:  d.manager.Role,
		d.manager2.ID: d.manager2.Role,
		d.admin.ID:    d.admin.Role,
	})
	d.repo = workflowtest.NewMemoryRepository(func(t *ticket) *ticket {
		c := *t
		return &c
	})
	d.engine = workflow.NewEngine[*ticket, ticketPayload](db, d.repo, d.kind, d.dir,
		workflow.WithOutbox(d.outbox),
		workflow.WithRecorder(d.recorder),
		workflow.WithClock(steppingClock()),
	)
	return d
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func (d *engineDeps) apply(t *testing.T, actor domain.Actor, title string) *ticket {
	t.Helper()
	expectTx(t, d.sqlMock, true)
	rec, err := d.engine.Apply(context.Background(), actor, ticketPayload{Title: title})
	assert.NoError(t, err)
	return rec
}

func TestEngine_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d := setupEngineTest(t)
		expectTx(t, d.sqlMock, true)

		rec, err := d.engine.Apply(ctx, d.employee, ticketPayload{Title: "laptop"})

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.Equal(t, d.employee.ID, rec.EmployeeID)
		assert.Equal(t, workflow.StatusPending, rec.Status)
		assert.Nil(t, rec.ReviewedBy)
		assert.Nil(t, rec.ReviewNote)
		assert.Nil(t, rec.ReviewedAt)
		assert.Equal(t, "laptop", rec.Title)
		assert.Equal(t, 1, d.repo.Len())
		assert.Equal(t, 1, d.recorder.submitted)

		if assert.Len(t, d.outbox.events, 1) {
			ev := d.outbox.events[0]
			assert.Equal(t, events.RequestLifecycleTopic, ev.Topic)
			assert.Equal(t, events.EventRequestSubmitted, ev.EventType)
			assert.Equal(t, "ticket", ev.AggregateType)
			assert.Equal(t, rec.ID.String(), ev.AggregateID)

			var payload events.RequestLifecycleEvent
			assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "pending", payload.Status)
			assert.Equal(t, d.employee.ID.String(), payload.EmployeeID)
		}
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("reviewer applies for themselves", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.manager, "conference")
		assert.Equal(t, d.manager.ID, rec.EmployeeID)
	})

	t.Run("negative validation failure persists nothing", func(t *testing.T) {
		d := setupEngineTest(t)

		_, err := d.engine.Apply(ctx, d.employee, ticketPayload{})

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
		assert.Equal(t, 0, d.repo.Len())
		assert.Empty(t, d.outbox.events)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative begin tx failure", func(t *testing.T) {
		d := setupEngineTest(t)
		d.sqlMock.ExpectBegin().WillReturnError(errors.New("db down"))

		_, err := d.engine.Apply(ctx, d.employee, ticketPayload{Title: "x"})

		assert.Error(t, err)
		assert.Equal(t, 0, d.repo.Len())
	})
}

func TestEngine_List(t *testing.T) {
	ctx := context.Background()
	d := setupEngineTest(t)

	empOld := d.apply(t, d.employee, "first")
	coworker := d.apply(t, d.coworker, "second")
	mgr := d.apply(t, d.manager, "third")
	empNew := d.apply(t, d.employee, "fourth")

	expectTx(t, d.sqlMock, true)
	_, err := d.engine.Review(ctx, d.manager, coworker.ID.String(), workflow.ReviewInput{Status: "approved"})
	assert.NoError(t, err)

	ids := func(recs []*ticket) []uuid.UUID {
		out := make([]uuid.UUID, len(recs))
		for i, r := range recs {
			out[i] = r.ID
		}
		return out
	}

	t.Run("employee sees only own records newest first", func(t *testing.T) {
		recs, err := d.engine.List(ctx, d.employee, approval.ListQuery{ForApproval: true})
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{empNew.ID, empOld.ID}, ids(recs))
	})

	t.Run("manager mine", func(t *testing.T) {
		recs, err := d.engine.List(ctx, d.manager, approval.ListQuery{Mine: true})
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{mgr.ID}, ids(recs))
	})

	t.Run("manager approval queue holds employee records", func(t *testing.T) {
		recs, err := d.engine.List(ctx, d.manager, approval.ListQuery{ForApproval: true})
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{empNew.ID, coworker.ID, empOld.ID}, ids(recs))
	})

	t.Run("manager approval queue filtered by status", func(t *testing.T) {
		recs, err := d.engine.List(ctx, d.manager, approval.ListQuery{ForApproval: true, Status: "pending"})
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{empNew.ID, empOld.ID}, ids(recs))
	})

	t.Run("admin approval queue holds manager records", func(t *testing.T) {
		recs, err := d.engine.List(ctx, d.admin, approval.ListQuery{ForApproval: true})
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{mgr.ID}, ids(recs))
	})

	t.Run("reviewer without flags sees all", func(t *testing.T) {
		recs, err := d.engine.List(ctx, d.admin, approval.ListQuery{})
		assert.NoError(t, err)
		assert.Len(t, recs, 4)
	})

	t.Run("negative unknown status filter", func(t *testing.T) {
		_, err := d.engine.List(ctx, d.admin, approval.ListQuery{Status: "cancelled"})
		assert.ErrorIs(t, err, workflowerrors.ErrInvalidStatusFilter)
	})

	t.Run("approval queue with no eligible owners is empty", func(t *testing.T) {
		d.dir.Remove(d.manager.ID)
		d.dir.Remove(d.manager2.ID)
		defer d.dir.Set(d.manager.ID, domain.RoleManager)
		defer d.dir.Set(d.manager2.ID, domain.RoleManager)

		recs, err := d.engine.List(ctx, d.admin, approval.ListQuery{ForApproval: true})
		assert.NoError(t, err)
		assert.Empty(t, recs)
	})

	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestEngine_GetByID(t *testing.T) {
	ctx := context.Background()
	d := setupEngineTest(t)
	rec := d.apply(t, d.employee, "badge")

	t.Run("success owner", func(t *testing.T) {
		got, err := d.engine.GetByID(ctx, d.employee, rec.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
	})

	t.Run("success reviewer", func(t *testing.T) {
		_, err := d.engine.GetByID(ctx, d.admin, rec.ID.String())
		assert.NoError(t, err)
	})

	t.Run("negative other employee", func(t *testing.T) {
		_, err := d.engine.GetByID(ctx, d.coworker, rec.ID.String())
		assert.ErrorIs(t, err, workflowerrors.ErrForbidden)
	})

	t.Run("negative unknown id", func(t *testing.T) {
		_, err := d.engine.GetByID(ctx, d.employee, uuid.NewString())
		assert.ErrorIs(t, err, workflowerrors.ErrRequestNotFound)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		_, err := d.engine.GetByID(ctx, d.employee, "not-a-uuid")
		assert.ErrorIs(t, err, workflowerrors.ErrRequestNotFound)
	})
}

func TestEngine_DeletedOwnerKeepsHistory(t *testing.T) {
	ctx := context.Background()
	d := setupEngineTest(t)
	rec := d.apply(t, d.employee, "monitor")
	pending := d.apply(t, d.employee, "desk")

	expectTx(t, d.sqlMock, true)
	_, err := d.engine.Review(ctx, d.manager, rec.ID.String(), workflow.ReviewInput{Status: "approved"})
	assert.NoError(t, err)

	d.dir.Remove(d.employee.ID)

	recs, err := d.engine.List(ctx, d.admin, approval.ListQuery{})
	assert.NoError(t, err)
	assert.Len(t, recs, 2)

	got, err := d.engine.GetByID(ctx, d.admin, rec.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, got.Status)
	if assert.NotNil(t, got.ReviewedBy) {
		assert.Equal(t, d.manager.ID, *got.ReviewedBy)
	}

	expectTx(t, d.sqlMock, false)
	_, err = d.engine.Review(ctx, d.manager, pending.ID.String(), workflow.ReviewInput{Status: "approved"})
	assert.ErrorIs(t, err, workflowerrors.ErrForbidden)

	_, err = d.engine.GetByID(ctx, d.admin, pending.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 2, d.repo.Len())
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestEngine_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("success approve runs side effect once", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "monitor")
		expectTx(t, d.sqlMock, true)

		got, err := d.engine.Review(ctx, d.manager, rec.ID.String(), workflow.ReviewInput{Status: "approved", Note: "ok"})

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusApproved, got.Status)
		if assert.NotNil(t, got.ReviewedBy) {
			assert.Equal(t, d.manager.ID, *got.ReviewedBy)
		}
		if assert.NotNil(t, got.ReviewNote) {
			assert.Equal(t, "ok", *got.ReviewNote)
		}
		assert.NotNil(t, got.ReviewedAt)
		assert.Equal(t, []uuid.UUID{rec.ID}, d.kind.approved)
		assert.Equal(t, 1, d.recorder.reviewed["approved"])
		assert.Equal(t, events.EventRequestReviewed, d.outbox.events[len(d.outbox.events)-1].EventType)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("success reject skips side effect and defaults note", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.manager, "travel")
		expectTx(t, d.sqlMock, true)

		got, err := d.engine.Review(ctx, d.admin, rec.ID.String(), workflow.ReviewInput{Status: "rejected"})

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusRejected, got.Status)
		if assert.NotNil(t, got.ReviewNote) {
			assert.Equal(t, "", *got.ReviewNote)
		}
		assert.Equal(t, 0, d.kind.approvedCount())
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid status checked before lookup", func(t *testing.T) {
		d := setupEngineTest(t)

		_, err := d.engine.Review(ctx, d.manager, uuid.NewString(), workflow.ReviewInput{Status: "pending"})

		assert.ErrorIs(t, err, workflowerrors.ErrInvalidStatus)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		d := setupEngineTest(t)
		expectTx(t, d.sqlMock, false)

		_, err := d.engine.Review(ctx, d.manager, uuid.NewString(), workflow.ReviewInput{Status: "approved"})

		assert.ErrorIs(t, err, workflowerrors.ErrRequestNotFound)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative second review keeps first decision", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "chair")
		expectTx(t, d.sqlMock, true)
		_, err := d.engine.Review(ctx, d.manager, rec.ID.String(), workflow.ReviewInput{Status: "approved"})
		assert.NoError(t, err)

		expectTx(t, d.sqlMock, false)
		_, err = d.engine.Review(ctx, d.manager2, rec.ID.String(), workflow.ReviewInput{Status: "rejected"})
		assert.ErrorIs(t, err, workflowerrors.ErrAlreadyReviewed)

		got, err := d.engine.GetByID(ctx, d.admin, rec.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusApproved, got.Status)
		assert.Equal(t, d.manager.ID, *got.ReviewedBy)
		assert.Equal(t, 1, d.kind.approvedCount())
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already reviewed wins over forbidden", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "desk")
		expectTx(t, d.sqlMock, true)
		_, err := d.engine.Review(ctx, d.manager, rec.ID.String(), workflow.ReviewInput{Status: "rejected"})
		assert.NoError(t, err)

		expectTx(t, d.sqlMock, false)
		_, err = d.engine.Review(ctx, d.admin, rec.ID.String(), workflow.ReviewInput{Status: "approved"})
		assert.ErrorIs(t, err, workflowerrors.ErrAlreadyReviewed)
	})

	forbidden := []struct {
		name      string
		requester func(d *engineDeps) domain.Actor
		reviewer  func(d *engineDeps) domain.Actor
	}{
		{"manager on manager", func(d *engineDeps) domain.Actor { return d.manager2 }, func(d *engineDeps) domain.Actor { return d.manager }},
		{"manager on own", func(d *engineDeps) domain.Actor { return d.manager }, func(d *engineDeps) domain.Actor { return d.manager }},
		{"admin on employee", func(d *engineDeps) domain.Actor { return d.employee }, func(d *engineDeps) domain.Actor { return d.admin }},
		{"employee on employee", func(d *engineDeps) domain.Actor { return d.coworker }, func(d *engineDeps) domain.Actor { return d.employee }},
		{"manager on admin", func(d *engineDeps) domain.Actor { return d.admin }, func(d *engineDeps) domain.Actor { return d.manager }},
	}
	for _, tc := range forbidden {
		t.Run("negative forbidden "+tc.name, func(t *testing.T) {
			d := setupEngineTest(t)
			rec := d.apply(t, tc.requester(d), "item")
			expectTx(t, d.sqlMock, false)

			_, err := d.engine.Review(ctx, tc.reviewer(d), rec.ID.String(), workflow.ReviewInput{Status: "approved"})

			assert.ErrorIs(t, err, workflowerrors.ErrForbidden)
			got, _ := d.engine.GetByID(ctx, d.admin, rec.ID.String())
			assert.Equal(t, workflow.StatusPending, got.Status)
			assert.Equal(t, 0, d.kind.approvedCount())
			assert.NoError(t, d.sqlMock.ExpectationsWereMet())
		})
	}

	t.Run("negative requester no longer exists", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "phone")
		d.dir.Remove(d.employee.ID)
		expectTx(t, d.sqlMock, false)

		_, err := d.engine.Review(ctx, d.manager, rec.ID.String(), workflow.ReviewInput{Status: "approved"})

		assert.ErrorIs(t, err, workflowerrors.ErrForbidden)
	})

	t.Run("negative side effect failure rolls back", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "headset")
		d.kind.approveErr = errors.New("ledger unavailable")
		expectTx(t, d.sqlMock, false)

		_, err := d.engine.Review(ctx, d.manager, rec.ID.String(), workflow.ReviewInput{Status: "approved"})

		assert.EqualError(t, err, "ledger unavailable")
		assert.Equal(t, 0, d.recorder.reviewed["approved"])
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestEngine_ReviewConcurrent(t *testing.T) {
	ctx := context.Background()
	d := setupEngineTest(t)
	rec := d.apply(t, d.employee, "standing desk")

	// One connection makes the two transactions run one after the other, the
	// way a row lock would.
	d.db.SetMaxOpenConns(1)
	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectCommit()
	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectRollback()

	decisions := []string{"approved", "rejected"}
	results := make([]error, len(decisions))
	reviewers := []domain.Actor{d.manager, d.manager2}

	var wg sync.WaitGroup
	for i := range decisions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = d.engine.Review(ctx, reviewers[i], rec.ID.String(), workflow.ReviewInput{Status: decisions[i]})
		}(i)
	}
	wg.Wait()

	winner := -1
	for i, err := range results {
		if err == nil {
			assert.Equal(t, -1, winner, "more than one review succeeded")
			winner = i
			continue
		}
		assert.ErrorIs(t, err, workflowerrors.ErrAlreadyReviewed)
	}
	if !assert.NotEqual(t, -1, winner) {
		return
	}

	got, err := d.engine.GetByID(ctx, d.admin, rec.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, workflow.Status(decisions[winner]), got.Status)
	assert.Equal(t, reviewers[winner].ID, *got.ReviewedBy)
	if decisions[winner] == "approved" {
		assert.Equal(t, 1, d.kind.approvedCount())
	} else {
		assert.Equal(t, 0, d.kind.approvedCount())
	}
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestEngine_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success owner deletes pending", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "mouse")
		expectTx(t, d.sqlMock, true)

		err := d.engine.Delete(ctx, d.employee, rec.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, 0, d.repo.Len())
		assert.Equal(t, 1, d.recorder.deleted)
		assert.Equal(t, events.EventRequestDeleted, d.outbox.events[len(d.outbox.events)-1].EventType)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		d := setupEngineTest(t)
		expectTx(t, d.sqlMock, false)

		err := d.engine.Delete(ctx, d.employee, uuid.NewString())

		assert.ErrorIs(t, err, workflowerrors.ErrRequestNotFound)
	})

	t.Run("negative reviewer is not owner", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "cable")
		expectTx(t, d.sqlMock, false)

		err := d.engine.Delete(ctx, d.manager, rec.ID.String())

		assert.ErrorIs(t, err, workflowerrors.ErrForbidden)
		assert.Equal(t, 1, d.repo.Len())
	})

	t.Run("negative already reviewed", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "dock")
		expectTx(t, d.sqlMock, true)
		_, err := d.engine.Review(ctx, d.manager, rec.ID.String(), workflow.ReviewInput{Status: "approved"})
		assert.NoError(t, err)
		expectTx(t, d.sqlMock, false)

		err = d.engine.Delete(ctx, d.employee, rec.ID.String())

		assert.ErrorIs(t, err, workflowerrors.ErrAlreadyReviewed)
		assert.Equal(t, 1, d.repo.Len())
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not owner checked before status", func(t *testing.T) {
		d := setupEngineTest(t)
		rec := d.apply(t, d.employee, "webcam")
		expectTx(t, d.sqlMock, true)
		_, err := d.engine.Review(ctx, d.manager, rec.ID.String(), workflow.ReviewInput{Status: "rejected"})
		assert.NoError(t, err)
		expectTx(t, d.sqlMock, false)

		err = d.engine.Delete(ctx, d.coworker, rec.ID.String())

		assert.ErrorIs(t, err, workflowerrors.ErrForbidden)
	})
}
