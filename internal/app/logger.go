// Package app provides logger initialization.
package app

import (
	"github.com/rentaldesk/rental-bff/config"
	"github.com/rentaldesk/rental-bff/internal/logger"
)

// InitializeLogger initializes the JSON logger from the log configuration.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
