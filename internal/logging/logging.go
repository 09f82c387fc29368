package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sugared zap logger shared by the CLI commands
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger on stderr. Debug output is enabled
// only when verbose is set.
func NewLogger(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}

	return &Logger{SugaredLogger: base.Sugar()}
}

// Nop discards everything; used by tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
