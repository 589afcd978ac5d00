package system

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewTestLogger returns a development logger for tests with automatic
// stacktraces turned off.
func NewTestLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, _ := cfg.Build()
	return logger.Sugar()
}

// NewObservedLogger returns a logger that records entries at level and
// above, for tests that assert on what was logged.
func NewObservedLogger(level zapcore.Level) (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core).Sugar(), logs
}
