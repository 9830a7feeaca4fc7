package auth

import (
	"context"
	"strings"
	"time"

	autherrors "github.com/prakhar-sonii/employee-management-system/internal/auth/errors"
	"github.com/prakhar-sonii/employee-management-system/internal/employee"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (employee.EmployeeResponse, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Me(ctx context.Context, employeeID uuid.UUID) (employee.EmployeeResponse, error)
}

type service struct {
	employees employee.Service
	token     TokenConfig
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(employees employee.Service, token TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		employees: employees,
		token:     token,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (employee.EmployeeResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return employee.EmployeeResponse{}, err
	}

	empl, err := s.employees.Register(ctx, employee.RegisterInput{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hashed),
		Department:   strings.TrimSpace(req.Department),
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logger.Info("employee registered",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", empl.ID.String()),
		zap.String("role", empl.Role.String()),
	)
	return employee.ToResponse(*empl), nil
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	empl, err := s.employees.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(empl.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("employee_id", empl.ID.String()))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, expiresAt, err := signToken(s.token, empl.ID.String(), empl.Role.String(), s.now())
	if err != nil {
		s.logger.Error("sign token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC(),
		Employee:    employee.ToResponse(*empl),
	}, nil
}

func (s *service) Me(ctx context.Context, employeeID uuid.UUID) (employee.EmployeeResponse, error) {
	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			return employee.EmployeeResponse{}, autherrors.ErrAccountNotFound
		}
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(*empl), nil
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
