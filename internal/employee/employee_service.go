package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/balance"
	"github.com/prakhar-sonii/employee-management-system/internal/domain"
	employeeerrors "github.com/prakhar-sonii/employee-management-system/internal/employee/errors"
	"github.com/prakhar-sonii/employee-management-system/internal/events"
	"github.com/prakhar-sonii/employee-management-system/internal/messaging/kafka"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeRoleKeyPrefix = "employees:role:"

func GetEmployeeRoleKey(role domain.Role) string {
	return EmployeeRoleKeyPrefix + role.String()
}

// ServiceConfig carries the values the directory takes from configuration.
type ServiceConfig struct {
	DefaultBalance balance.Balance
	RoleCacheTTL   time.Duration
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	RoleOf(ctx context.Context, id uuid.UUID) (domain.Role, error)
	IDsByRole(ctx context.Context, role domain.Role) ([]uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Register(ctx context.Context, in RegisterInput) (*Employee, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	UpdateRole(ctx context.Context, actor domain.Actor, id string, req UpdateRoleRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	cfg    ServiceConfig
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	cfg ServiceConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if cfg.RoleCacheTTL <= 0 {
		cfg.RoleCacheTTL = 5 * time.Minute
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		cfg:    cfg,
		logger: l,
	}
}

func (s *service) RoleOf(ctx context.Context, id uuid.UUID) (domain.Role, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	return empl.Role, nil
}

// IDsByRole backs the approval queues. Results are cached in Redis and
// concurrent misses for the same role share one query.
func (s *service) IDsByRole(ctx context.Context, role domain.Role) ([]uuid.UUID, error) {
	if !role.Valid() {
		return nil, employeeerrors.ErrInvalidRole
	}
	cacheKey := GetEmployeeRoleKey(role)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var ids []uuid.UUID
			if json.Unmarshal([]byte(cached), &ids) == nil {
				return ids, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		ids, err := s.repo.FindIDsByRole(ctx, role)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if ids == nil {
			ids = []uuid.UUID{}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(ids); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, s.cfg.RoleCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee ids by role failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return ids, nil
	})
	if err != nil {
		s.logger.Error("find employee ids by role failed", zap.String("role", role.String()), zap.Error(err))
		return nil, err
	}

	return v.([]uuid.UUID), nil
}

func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

func (s *service) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

// Register creates an employee with the configured starting balances. The
// very first account becomes admin so the system can be bootstrapped.
func (s *service) Register(ctx context.Context, in RegisterInput) (*Employee, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register employee requested",
		zap.String("request_id", rid),
		zap.String("email", in.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	count, err := qtx.CountForUpdate(ctx)
	if err != nil {
		s.logger.Error("register employee count failed", zap.Error(err))
		return nil, err
	}

	role := domain.RoleEmployee
	if count == 0 {
		role = domain.RoleAdmin
	}

	empl := &Employee{
		ID:            uuid.New(),
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  in.PasswordHash,
		Role:          role,
		Department:    in.Department,
		CasualBalance: s.cfg.DefaultBalance.Casual,
		SickBalance:   s.cfg.DefaultBalance.Sick,
		AnnualBalance: s.cfg.DefaultBalance.Annual,
	}
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Warn("register employee persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EventEmployeeRegistered, empl.ID, uuid.Nil, role); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return nil, err
	}

	s.invalidateRoles(ctx, role)
	s.logger.Info("register employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("role", role.String()),
	)
	return empl, nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) UpdateRole(ctx context.Context, actor domain.Actor, id string, req UpdateRoleRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee role requested",
		zap.String("actor_id", actor.ID.String()),
		zap.String("employee_id", id),
		zap.String("role", req.Role),
	)

	targetID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}
	if targetID == actor.ID {
		s.logger.Warn("update employee role on self rejected", zap.String("actor_id", actor.ID.String()))
		return EmployeeResponse{}, employeeerrors.ErrSelfModification
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee role begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, targetID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	previous := empl.Role

	if err := qtx.UpdateRole(ctx, targetID, role); err != nil {
		s.logger.Error("update employee role persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	empl.Role = role

	if err := s.enqueue(ctx, tx, events.EventEmployeeRoleChanged, targetID, actor.ID, role); err != nil {
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee role commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateRoles(ctx, previous, role)
	s.logger.Info("update employee role success",
		zap.String("employee_id", id),
		zap.String("from_role", previous.String()),
		zap.String("to_role", role.String()),
	)
	return ToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	s.logger.Debug("delete employee requested",
		zap.String("actor_id", actor.ID.String()),
		zap.String("employee_id", id),
	)

	targetID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}
	if targetID == actor.ID {
		s.logger.Warn("delete employee on self rejected", zap.String("actor_id", actor.ID.String()))
		return employeeerrors.ErrSelfModification
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, targetID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, targetID); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := s.enqueue(ctx, tx, events.EventEmployeeDeleted, targetID, actor.ID, empl.Role); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateRoles(ctx, empl.Role)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, employeeID, actorID uuid.UUID, role domain.Role) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: employeeID.String(),
		Role:       role.String(),
		OccurredAt: time.Now().UTC(),
	}
	if actorID != uuid.Nil {
		event.ActorID = actorID.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   employeeID.String(),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("employee outbox persist failed",
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) invalidateRoles(ctx context.Context, roles ...domain.Role) {
	if s.rdb == nil {
		return
	}
	for _, role := range roles {
		cacheKey := GetEmployeeRoleKey(role)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate employee role cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}
}

// ToResponse flattens an employee for the API. The password hash never
// leaves the package.
func ToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID.String(),
		Name:       empl.Name,
		Email:      empl.Email,
		Role:       empl.Role.String(),
		Department: empl.Department,
		LeaveBalance: LeaveBalanceResponse{
			Casual: empl.CasualBalance,
			Sick:   empl.SickBalance,
			Annual: empl.AnnualBalance,
		},
		CreatedAt: empl.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		resp[i] = ToResponse(e)
	}
	return resp
}
