package reimbursement

import (
	"context"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/approval"
	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	"github.com/prakhar-sonii/employee-management-system/internal/employee"
	"github.com/prakhar-sonii/employee-management-system/internal/workflow"

	"go.uber.org/zap"
)

// Engine is the workflow engine specialised to reimbursement claims.
type Engine = workflow.Engine[*Claim, ApplyClaimRequest]

//go:generate mockgen -source=reimbursement_service.go -destination=mock/reimbursement_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actor domain.Actor, req ApplyClaimRequest) (ClaimResponse, error)
	List(ctx context.Context, actor domain.Actor, q approval.ListQuery) ([]ClaimResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (ClaimResponse, error)
	Review(ctx context.Context, actor domain.Actor, id string, req ReviewClaimRequest) (ClaimResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	engine *Engine
	logger *zap.Logger
}

func NewService(engine *Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("reimbursement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.service")
	}
	return &service{engine: engine, logger: l}
}

func (s *service) Apply(ctx context.Context, actor domain.Actor, req ApplyClaimRequest) (ClaimResponse, error) {
	rec, err := s.engine.Apply(ctx, actor, req)
	if err != nil {
		return ClaimResponse{}, err
	}
	s.logger.Debug("claim submitted",
		zap.String("claim_id", rec.ID.String()),
		zap.String("category", string(rec.Category)),
		zap.String("amount", rec.Amount.StringFixed(2)),
	)
	return mapToResponse(rec), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, q approval.ListQuery) ([]ClaimResponse, error) {
	recs, err := s.engine.List(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	out := make([]ClaimResponse, len(recs))
	for i, rec := range recs {
		out[i] = mapToResponse(rec)
	}
	s.logger.Debug("list reimbursements",
		zap.String("employee_id", actor.ID.String()),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (ClaimResponse, error) {
	rec, err := s.engine.GetByID(ctx, actor, id)
	if err != nil {
		return ClaimResponse{}, err
	}
	return mapToResponse(rec), nil
}

func (s *service) Review(ctx context.Context, actor domain.Actor, id string, req ReviewClaimRequest) (ClaimResponse, error) {
	rec, err := s.engine.Review(ctx, actor, id, workflow.ReviewInput{
		Status: req.Status,
		Note:   req.ReviewNote,
	})
	if err != nil {
		return ClaimResponse{}, err
	}
	return mapToResponse(rec), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.engine.Delete(ctx, actor, id)
}

func mapToResponse(rec *Claim) ClaimResponse {
	resp := ClaimResponse{
		ID:          rec.ID.String(),
		EmployeeID:  rec.EmployeeID.String(),
		Employee:    employee.ToSummary(rec.Employee),
		Amount:      rec.Amount,
		Category:    string(rec.Category),
		Description: rec.Description,
		Status:      string(rec.Status),
		ReviewedBy:  employee.ToSummary(rec.Reviewer),
		ReviewNote:  rec.ReviewNote,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.ReviewedAt != nil {
		at := rec.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	return resp
}
