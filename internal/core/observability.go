package core

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the structured logger used by the service. *slog.Logger satisfies
// it, and NewGoKitLogger adapts a go-kit logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// GoKitLogger forwards Logger calls to a go-kit logger, tagging each record
// with its level and a "msg" key.
type GoKitLogger struct {
	logger log.Logger
}

// NewGoKitLogger wraps l. A nil l discards everything.
func NewGoKitLogger(l log.Logger) GoKitLogger {
	if l == nil {
		l = log.NewNopLogger()
	}
	return GoKitLogger{logger: l}
}

// Debug logs at level=debug.
func (g GoKitLogger) Debug(msg string, args ...any) { g.log(level.Debug(g.logger), msg, args) }

// Info logs at level=info.
func (g GoKitLogger) Info(msg string, args ...any) { g.log(level.Info(g.logger), msg, args) }

// Warn logs at level=warn.
func (g GoKitLogger) Warn(msg string, args ...any) { g.log(level.Warn(g.logger), msg, args) }

// Error logs at level=error.
func (g GoKitLogger) Error(msg string, args ...any) { g.log(level.Error(g.logger), msg, args) }

func (GoKitLogger) log(l log.Logger, msg string, args []any) {
	kv := make([]any, 0, len(args)+2)
	kv = append(kv, "msg", msg)
	kv = append(kv, args...)
	_ = l.Log(kv...)
}

// MetricsRecorder receives one observation per service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

// Tracer starts a span around each service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is ended exactly once with the operation's outcome.
type TraceSpan interface {
	End(err error)
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}
