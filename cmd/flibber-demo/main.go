// Command flibber-demo builds a Foo and a Bar, mutates them in a fixed order,
// and prints their rendered state before and after each round.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"flibbercore/internal/core"
	"flibbercore/pkg/domain"
)

var exitFunc = os.Exit

type options struct {
	seed       int64
	wibble     int
	flibbers   int
	yibbleRule string
	logLevel   string
	metrics    bool
	backend    string
	trace      bool
}

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("flibber-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.Int64Var(&opts.seed, "seed", 0, "random seed; 0 picks a nondeterministic source")
	fs.IntVar(&opts.wibble, "wibble", 0, "initial wibble of Foo")
	fs.IntVar(&opts.flibbers, "flibbers", 2, "flibbers appended to each entity")
	fs.StringVar(&opts.yibbleRule, "yibble-rule", "double", "yibble rule: double or increment")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.metrics, "metrics", false, "print collected metrics after the run")
	fs.StringVar(&opts.backend, "metrics-backend", "prometheus", "metrics backend: prometheus or expvar")
	fs.BoolVar(&opts.trace, "trace", false, "write one JSON span per operation to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rule, err := parseYibbleRule(opts.yibbleRule)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	filter, err := parseLogLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.flibbers < 0 {
		fmt.Fprintf(stderr, "flibbers must not be negative: %d\n", opts.flibbers)
		return 2
	}

	if opts.backend != "prometheus" && opts.backend != "expvar" {
		fmt.Fprintf(stderr, "unknown metrics backend %q\n", opts.backend)
		return 2
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	logger = level.NewFilter(log.With(logger, "ts", log.DefaultTimestampUTC), filter)

	recorder, dump, err := newMetrics(opts.backend)
	if err != nil {
		level.Error(logger).Log("msg", "metrics setup failed", "err", err)
		return 1
	}

	svcOpts := []core.ServiceOption{
		core.WithRand(newRand(opts.seed)),
		core.WithFooWibble(opts.wibble),
		core.WithYibbleRule(rule),
		core.WithLogger(core.NewGoKitLogger(logger)),
		core.WithMetricsRecorder(recorder),
	}
	if opts.trace {
		svcOpts = append(svcOpts, core.WithTracer(core.NewJSONTracer(stderr)))
	}
	svc := core.NewService(svcOpts...)
	if err := run(context.Background(), svc, opts.flibbers, stdout); err != nil {
		level.Error(logger).Log("msg", "demo failed", "err", err)
		return 1
	}
	if opts.metrics {
		if err := dump(stdout); err != nil {
			level.Error(logger).Log("msg", "write metrics failed", "err", err)
			return 1
		}
	}
	return 0
}

// newMetrics returns the recorder for backend and a function printing what it
// collected.
func newMetrics(backend string) (core.MetricsRecorder, func(io.Writer) error, error) {
	if backend == "expvar" {
		rec := core.NewExpvarMetricsRecorder("")
		return rec, func(w io.Writer) error {
			if err := json.NewEncoder(w).Encode(rec.Snapshot()); err != nil {
				return fmt.Errorf("encode metrics: %w", err)
			}
			return nil
		}, nil
	}
	reg := prometheus.NewRegistry()
	rec, err := core.NewPrometheusMetricsRecorder(reg)
	if err != nil {
		return nil, nil, err
	}
	return rec, func(w io.Writer) error { return writeMetrics(reg, w) }, nil
}

func newRand(seed int64) domain.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

func parseYibbleRule(name string) (domain.YibbleRule, error) {
	switch name {
	case "double":
		return domain.YibbleDoubling, nil
	case "increment":
		return domain.YibbleIncrement, nil
	default:
		return nil, fmt.Errorf("unknown yibble rule %q", name)
	}
}

func parseLogLevel(name string) (level.Option, error) {
	switch name {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", name)
	}
}

type step struct {
	title string
	ops   []func(context.Context) error
}

func repeat(op func(context.Context) error, n int) []func(context.Context) error {
	ops := make([]func(context.Context) error, n)
	for i := range ops {
		ops[i] = op
	}
	return ops
}

func run(ctx context.Context, svc *core.Service, flibbers int, w io.Writer) error {
	sections := []struct {
		heading string
		render  func(uint8) string
		steps   []step
	}{
		{
			heading: "Foo",
			render:  svc.RenderFoo,
			steps: []step{
				{title: "Perform wibble-zorbling", ops: []func(context.Context) error{svc.Wibble, svc.Zorble}},
				{title: "Perform flibbering", ops: repeat(svc.FlibberFoo, flibbers)},
				{title: "Perform unwibbling", ops: []func(context.Context) error{svc.Unwibble}},
			},
		},
		{
			heading: "Bar",
			render:  svc.RenderBar,
			steps: []step{
				{title: "Perform splinx-yibbling", ops: []func(context.Context) error{svc.Splinx, svc.Yibble, svc.Yibble}},
				{title: "Perform flibbering", ops: repeat(svc.FlibberBar, flibbers)},
			},
		},
	}

	for _, sec := range sections {
		if _, err := fmt.Fprintf(w, "#### %s\n%s", sec.heading, sec.render(1)); err != nil {
			return err
		}
		for _, st := range sec.steps {
			for _, op := range st.ops {
				if err := op(ctx); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "\t%s\n%s", st.title, sec.render(1)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
