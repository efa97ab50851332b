package core

import (
	"context"
	"fmt"
	"time"

	"flibbercore/pkg/domain"
)

// Operation names reported to loggers, metrics, and tracers.
const (
	OpWibble     = "wibble"
	OpUnwibble   = "unwibble"
	OpZorble     = "zorble"
	OpFlibberFoo = "flibber_foo"
	OpSplinx     = "splinx"
	OpYibble     = "yibble"
	OpFlibberBar = "flibber_bar"
)

// Service owns one Foo and one Bar and applies named mutations to them,
// reporting every operation to the configured logger, metrics recorder, and
// tracer. A Service is not safe for concurrent use.
type Service struct {
	foo *domain.Foo
	bar *domain.Bar

	rng        domain.Rand
	fooWibble  int
	yibbleRule domain.YibbleRule
	logger     Logger
	metrics    MetricsRecorder
	tracer     Tracer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRand sets the random source shared by both entities.
func WithRand(r domain.Rand) ServiceOption {
	return func(s *Service) { s.rng = r }
}

// WithFooWibble sets Foo's initial wibble.
func WithFooWibble(wibble int) ServiceOption {
	return func(s *Service) { s.fooWibble = wibble }
}

// WithYibbleRule overrides Bar's yibble rule.
func WithYibbleRule(rule domain.YibbleRule) ServiceOption {
	return func(s *Service) { s.yibbleRule = rule }
}

// WithLogger sets the logger. nil restores the no-op logger.
func WithLogger(l Logger) ServiceOption {
	return func(s *Service) {
		if l == nil {
			l = noopLogger{}
		}
		s.logger = l
	}
}

// WithMetricsRecorder sets the metrics recorder. nil disables metrics.
func WithMetricsRecorder(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m == nil {
			m = noopMetrics{}
		}
		s.metrics = m
	}
}

// WithTracer sets the tracer. nil disables tracing.
func WithTracer(t Tracer) ServiceOption {
	return func(s *Service) {
		if t == nil {
			t = noopTracer{}
		}
		s.tracer = t
	}
}

// NewService builds a Service with freshly constructed entities.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.foo = domain.NewFoo(s.fooWibble, s.rng)
	s.bar = domain.NewBar(s.rng, domain.WithYibbleRule(s.yibbleRule))
	return s
}

// Foo returns the managed Foo.
func (s *Service) Foo() *domain.Foo { return s.foo }

// Bar returns the managed Bar.
func (s *Service) Bar() *domain.Bar { return s.bar }

// Wibble increments Foo's wibble.
func (s *Service) Wibble(ctx context.Context) error { return s.run(ctx, OpWibble, s.foo.Wibble) }

// Unwibble decrements Foo's wibble.
func (s *Service) Unwibble(ctx context.Context) error { return s.run(ctx, OpUnwibble, s.foo.Unwibble) }

// Zorble advances Foo's zorble letter.
func (s *Service) Zorble(ctx context.Context) error { return s.run(ctx, OpZorble, s.foo.Zorble) }

// FlibberFoo appends a flibber to Foo's collection.
func (s *Service) FlibberFoo(ctx context.Context) error {
	return s.run(ctx, OpFlibberFoo, s.foo.Flibber)
}

// Splinx draws a new splinx for Bar.
func (s *Service) Splinx(ctx context.Context) error { return s.run(ctx, OpSplinx, s.bar.Splinx) }

// Yibble advances Bar's yibble by its rule.
func (s *Service) Yibble(ctx context.Context) error { return s.run(ctx, OpYibble, s.bar.Yibble) }

// FlibberBar appends a flibber to Bar's collection.
func (s *Service) FlibberBar(ctx context.Context) error {
	return s.run(ctx, OpFlibberBar, s.bar.Flibber)
}

// RenderFoo renders Foo at the given indent.
func (s *Service) RenderFoo(indent uint8) string { return s.foo.Render(indent) }

// RenderBar renders Bar at the given indent.
func (s *Service) RenderBar(indent uint8) string { return s.bar.Render(indent) }

// run applies mutate unless ctx is already done. The mutation itself cannot fail.
func (s *Service) run(ctx context.Context, op string, mutate func()) (err error) {
	ctx, span := s.tracer.Start(ctx, op)
	start := time.Now()
	defer func() {
		s.metrics.Observe(ctx, op, err == nil, time.Since(start))
		span.End(err)
	}()

	if cerr := ctx.Err(); cerr != nil {
		err = fmt.Errorf("%s: %w", op, cerr)
		s.logger.Warn("operation skipped", "operation", op, "error", cerr)
		return err
	}
	mutate()
	s.logger.Debug("operation applied", "operation", op)
	return nil
}
