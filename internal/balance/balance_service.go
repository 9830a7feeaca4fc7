package balance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetMine(ctx context.Context, employeeID uuid.UUID) (BalanceResponse, error)
}

type service struct {
	ledger Ledger
	logger *zap.Logger
}

func NewService(ledger Ledger, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{ledger: ledger, logger: l}
}

func (s *service) GetMine(ctx context.Context, employeeID uuid.UUID) (BalanceResponse, error) {
	b, err := s.ledger.Get(ctx, employeeID)
	if err != nil {
		s.logger.Warn("get balance failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return BalanceResponse{}, err
	}
	entries, err := s.ledger.History(ctx, employeeID)
	if err != nil {
		s.logger.Error("get balance history failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return BalanceResponse{}, err
	}

	resp := BalanceResponse{
		EmployeeID: employeeID.String(),
		Balance:    b,
		History:    make([]EntryResponse, len(entries)),
	}
	for i, e := range entries {
		resp.History[i] = EntryResponse{
			ID:        e.ID.String(),
			LeaveType: string(e.LeaveType),
			Delta:     e.Delta,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
		if e.SourceID != nil {
			v := e.SourceID.String()
			resp.History[i].SourceID = &v
		}
	}
	return resp, nil
}
