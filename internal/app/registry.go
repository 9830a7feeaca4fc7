package app

import (
	"database/sql"

	"github.com/prakhar-sonii/employee-management-system/internal/auth"
	"github.com/prakhar-sonii/employee-management-system/internal/balance"
	"github.com/prakhar-sonii/employee-management-system/internal/config"
	"github.com/prakhar-sonii/employee-management-system/internal/employee"
	"github.com/prakhar-sonii/employee-management-system/internal/leave"
	"github.com/prakhar-sonii/employee-management-system/internal/messaging/kafka"
	"github.com/prakhar-sonii/employee-management-system/internal/middleware"
	"github.com/prakhar-sonii/employee-management-system/internal/rbac"
	"github.com/prakhar-sonii/employee-management-system/internal/rbac/infra"
	"github.com/prakhar-sonii/employee-management-system/internal/reimbursement"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/metrics"
	"github.com/prakhar-sonii/employee-management-system/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps is everything registerModules needs from the outside world.
type deps struct {
	cfg     *config.Config
	db      *sql.DB
	gormDB  *gorm.DB
	rdb     *redis.Client
	metrics *metrics.MetricsService
	logger  *zap.Logger
}

func registerModules(router *gin.Engine, d deps) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(d.gormDB)
	leaveRepo := leave.NewRepository(d.gormDB)
	claimRepo := reimbursement.NewRepository(d.gormDB)
	outboxRepo := kafka.NewOutboxRepository(d.db)
	ledger := balance.NewLedger(d.gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, d.logger)
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(d.db, employeeRepo, outboxRepo, d.rdb, employee.ServiceConfig{
		DefaultBalance: balance.Balance{
			Casual: d.cfg.Leave.DefaultCasual,
			Sick:   d.cfg.Leave.DefaultSick,
			Annual: d.cfg.Leave.DefaultAnnual,
		},
		RoleCacheTTL: d.cfg.Redis.RoleCacheTTL,
	}, d.logger)
	authService := auth.NewService(employeeService, auth.TokenConfig{
		Secret: d.cfg.JWT.Secret,
		TTL:    d.cfg.JWT.TTL,
	}, d.logger)
	balanceService := balance.NewService(ledger, d.logger)

	engineOpts := []workflow.Option{
		workflow.WithOutbox(outboxRepo),
		workflow.WithRecorder(d.metrics),
		workflow.WithLogger(d.logger),
	}
	leaveEngine := workflow.NewEngine[*leave.LeaveRequest, leave.ApplyLeaveRequest](
		d.db, leaveRepo, leave.NewKind(ledger), employeeService, engineOpts...,
	)
	claimEngine := workflow.NewEngine[*reimbursement.Claim, reimbursement.ApplyClaimRequest](
		d.db, claimRepo, reimbursement.NewKind(), employeeService, engineOpts...,
	)
	leaveService := leave.NewService(leaveEngine, d.logger)
	claimService := reimbursement.NewService(claimEngine, d.logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, d.cfg.IsProduction(), d.logger)
	balanceHandler := balance.NewHandler(balanceService, d.logger)
	employeeHandler := employee.NewHandler(employeeService, d.logger)
	leaveHandler := leave.NewHandler(leaveService, d.logger)
	claimHandler := reimbursement.NewHandler(claimService, d.logger)
	rbacHandler := rbac.NewHandler(rbacService, d.logger)

	// --- Routes Registration ---
	authMW := middleware.AuthMiddleware(d.cfg.JWT.Secret, employeeService)

	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, authMW)

	protected := api.Group("", authMW)
	{
		balance.RegisterRoutes(protected, balanceHandler, rbacService)
		leave.RegisterRoutes(protected, leaveHandler, rbacService, d.rdb, d.cfg.Redis.IdempotencyTTL, d.logger)
		reimbursement.RegisterRoutes(protected, claimHandler, rbacService, d.rdb, d.cfg.Redis.IdempotencyTTL, d.logger)
		employee.RegisterRoutes(protected, employeeHandler, rbacService)
		rbac.RegisterRoutes(protected, rbacHandler, rbacService)
	}

	return nil
}
