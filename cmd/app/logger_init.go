package main

import (
	"os"

	"github.com/osse101/mobmoney/internal/logger"
)

// initBootLogger installs a stdout logger used until the configuration is
// loaded and the session log is set up
func initBootLogger() {
	cfg := logger.DefaultConfig()
	if f := os.Getenv("LOG_FORMAT"); f != "" {
		cfg.Format = f
	}
	logger.InitLogger(cfg)
}
