package logger

import (
	"go.uber.org/zap"

	"github.com/mtvnnb/vie-driver-license-test-anki/internal/config"
)

// New builds a logger that writes to stderr and, when configured, to the run log file.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	zcfg.OutputPaths = []string{"stderr"}
	if cfg.LogFile != "" {
		zcfg.OutputPaths = append(zcfg.OutputPaths, cfg.LogFile)
	}

	return zcfg.Build()
}
