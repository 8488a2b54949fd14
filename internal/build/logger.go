package build

import "go.uber.org/zap"

// Logger is the minimal structured logging surface the pipeline emits to.
// Arguments are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is the default logger; it discards everything.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// zapLogger adapts a zap sugared logger to the Logger interface.
type zapLogger struct {
	sug *zap.SugaredLogger
}

// NewZapLogger wraps a zap logger for injection via WithLogger.
func NewZapLogger(l *zap.Logger) Logger {
	return zapLogger{sug: l.Sugar()}
}

func (l zapLogger) Debug(msg string, args ...any) { l.sug.Debugw(msg, args...) }
func (l zapLogger) Info(msg string, args ...any)  { l.sug.Infow(msg, args...) }
func (l zapLogger) Warn(msg string, args ...any)  { l.sug.Warnw(msg, args...) }
func (l zapLogger) Error(msg string, args ...any) { l.sug.Errorw(msg, args...) }
