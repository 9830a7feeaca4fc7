package app

import (
	"context"
	"net/http"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/config"
	"github.com/prakhar-sonii/employee-management-system/internal/middleware"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/connection"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/metrics"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/migration"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects infrastructure, applies migrations and mounts every
// route on router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	version, err := migration.Up(context.Background(), sqlDB, cfg.Postgres.MigrateTimeout)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("migrations applied", zap.Int64("version", version))

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	m := metrics.NewMetricsService()

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Metrics(m),
		middleware.RateLimitByIP(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst),
	)
	router.GET("/health", healthHandler(sqlDB, redisClient))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// 2. Register Modules & Routes
	if err := registerModules(router, deps{
		cfg:     cfg,
		db:      sqlDB,
		gormDB:  gormDB,
		rdb:     redisClient,
		metrics: m,
		logger:  logger,
	}); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

// pinger is satisfied by *sql.DB.
type pinger interface {
	PingContext(ctx context.Context) error
}

func healthHandler(db pinger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"database": "up", "redis": "up"}
		healthy := true
		if err := db.PingContext(ctx); err != nil {
			status["database"] = "down"
			healthy = false
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				status["redis"] = "down"
				healthy = false
			}
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "dependency unavailable", status)
			return
		}
		response.Success(c, http.StatusOK, status, nil)
	}
}
