package rbac

import (
	"github.com/prakhar-sonii/employee-management-system/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	PermissionsOf(role domain.Role) ([]Permission, error)
}

type service struct {
	enforcer *casbin.SyncedEnforcer
	logger   *zap.Logger
}

// NewService loads the static policy into enforcer.
func NewService(enforcer *casbin.SyncedEnforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) load() error {
	s.enforcer.ClearPolicy()

	for _, g := range Inheritance {
		if _, err := s.enforcer.AddGroupingPolicy(g[0].String(), g[1].String()); err != nil {
			return err
		}
	}
	for _, p := range Permissions {
		if _, err := s.enforcer.AddPolicy(p.Role.String(), p.Resource, p.Action); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded",
		zap.Int("inheritance", len(Inheritance)),
		zap.Int("permissions", len(Permissions)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	allowed, err := s.enforcer.Enforce(req.Role.String(), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role.String()),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role.String()),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// PermissionsOf returns direct and inherited permissions of role.
func (s *service) PermissionsOf(role domain.Role) ([]Permission, error) {
	rows, err := s.enforcer.GetImplicitPermissionsForUser(role.String())
	if err != nil {
		return nil, err
	}
	out := make([]Permission, 0, len(rows))
	for _, r := range rows {
		if len(r) < 3 {
			continue
		}
		out = append(out, Permission{Role: domain.Role(r[0]), Resource: r[1], Action: r[2]})
	}
	return out, nil
}
