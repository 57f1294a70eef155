package internal

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide structured logger. Debug switches to the
// development config with human-readable output.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
