package leave

import (
	"context"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/approval"
	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/employee"
	"github.com/prakhar-sonii/employee-management-system/internal/workflow"

	"go.uber.org/zap"
)

// Engine is the workflow engine specialised to leave requests.
type Engine = workflow.Engine[*LeaveRequest, ApplyLeaveRequest]

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actor domain.Actor, req ApplyLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, actor domain.Actor, q approval.ListQuery) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	Review(ctx context.Context, actor domain.Actor, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	engine *Engine
	logger *zap.Logger
}

func NewService(engine *Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{engine: engine, logger: l}
}

func (s *service) Apply(ctx context.Context, actor domain.Actor, req ApplyLeaveRequest) (LeaveResponse, error) {
	rec, err := s.engine.Apply(ctx, actor, req)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(rec), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, q approval.ListQuery) ([]LeaveResponse, error) {
	recs, err := s.engine.List(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	out := make([]LeaveResponse, len(recs))
	for i, rec := range recs {
		out[i] = mapToResponse(rec)
	}
	s.logger.Debug("list leaves",
		zap.String("employee_id", actor.ID.String()),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	rec, err := s.engine.GetByID(ctx, actor, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(rec), nil
}

func (s *service) Review(ctx context.Context, actor domain.Actor, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	rec, err := s.engine.Review(ctx, actor, id, workflow.ReviewInput{
		Status: req.Status,
		Note:   req.ReviewNote,
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(rec), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.engine.Delete(ctx, actor, id)
}

func mapToResponse(rec *LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         rec.ID.String(),
		EmployeeID: rec.EmployeeID.String(),
		Employee:   employee.ToSummary(rec.Employee),
		LeaveType:  string(rec.LeaveType),
		StartDate:  rec.StartDate.Format(dateLayout),
		EndDate:    rec.EndDate.Format(dateLayout),
		Days:       rec.Days,
		Reason:     rec.Reason,
		Status:     string(rec.Status),
		ReviewedBy: employee.ToSummary(rec.Reviewer),
		ReviewNote: rec.ReviewNote,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.ReviewedAt != nil {
		at := rec.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	return resp
}
