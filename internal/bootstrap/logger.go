package bootstrap

import (
	"github.com/prakhar-sonii/employee-management-system/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds the process logger: JSON output in production, console
// output otherwise, at the configured level.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	return zc.Build()
}
