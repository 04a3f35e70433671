// Package logger wraps the zap logger used across the server.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// ZapLogger holds the process-wide structured logger.
type ZapLogger struct {
	// Log is a no-op logger until Init succeeds.
	Log *zap.Logger
}

// New returns a ZapLogger with a no-op Log.
func New() *ZapLogger {
	return &ZapLogger{Log: zap.NewNop()}
}

// Init replaces Log with a production JSON logger at the given level.
// The level name is case-insensitive.
func (l *ZapLogger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
