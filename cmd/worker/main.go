package main

import (
	"github.com/prakhar-sonii/employee-management-system/internal/app"
	"github.com/prakhar-sonii/employee-management-system/internal/bootstrap"
	"github.com/prakhar-sonii/employee-management-system/internal/config"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"

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

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
