// Package logging provides the client's debug-only structured logger: a
// thin zap wrapper that installs a true no-op core when debug logging is
// disabled, so disabled call sites pay no formatting or allocation cost.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger bound to either a JSON-to-stderr core or a
// no-op core, selected once at construction time.
type Logger struct {
	zap *zap.Logger
}

// New returns a Logger. When debug is false, every log call is a no-op.
func New(debug bool) *Logger {
	if !debug {
		return &Logger{zap: zap.New(zapcore.NewNopCore())}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		zapcore.DebugLevel,
	)
	return &Logger{zap: zap.New(core)}
}

func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, zap.Any("fields", fields))
}

func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, zap.Any("fields", fields))
}

func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, zap.Any("fields", fields))
}

func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, zap.Any("fields", fields))
}
