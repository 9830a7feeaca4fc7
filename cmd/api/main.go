package main

import (
	"github.com/prakhar-sonii/employee-management-system/internal/app"
	"github.com/prakhar-sonii/employee-management-system/internal/bootstrap"
	"github.com/prakhar-sonii/employee-management-system/internal/config"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	auditLogger := bootstrap.NewStdoutAuditLogger(logger)
	if err := bootstrap.StartHTTPServer(r, cfg.Server, auditLogger); err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
