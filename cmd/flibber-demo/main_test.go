package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"flibbercore/internal/core"
)

func TestCLISeededRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-seed", "42", "-wibble", "10"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"#### Foo\n\twibble: 10\n\tzorble: a\n",
		"\tPerform wibble-zorbling\n\twibble: 11\n\tzorble: b\n",
		"\tPerform unwibbling\n\twibble: 10\n",
		"#### Bar\n\tsplinx: Emptio\n\tyibble: 0\n",
		"\tyibble: 6\n",
		"\tflibbers:\n\t\t",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	var again bytes.Buffer
	if code := cli([]string{"-seed", "42", "-wibble", "10"}, &again, &stderr); code != 0 {
		t.Fatalf("second run exit %d", code)
	}
	if again.String() != out {
		t.Fatalf("same seed produced different output")
	}
}

func TestCLIIncrementRuleAndNoFlibbers(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-yibble-rule", "increment", "-flibbers", "0"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "\tyibble: 2\n") {
		t.Fatalf("expected yibble 2 under increment rule:\n%s", stdout.String())
	}
	if strings.Contains(stdout.String(), "flibbers:") {
		t.Fatalf("expected no flibbers block:\n%s", stdout.String())
	}
}

func TestCLIDebugLogging(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-log-level", "debug", "-flibbers", "1"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr.String(), "operation=flibber_bar") {
		t.Fatalf("expected debug log for flibber_bar, got %q", stderr.String())
	}
}

func TestCLIMetrics(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-metrics"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `flibbercore_operations_total{operation="yibble",status="success"} 2`) {
		t.Fatalf("expected yibble counter in metrics output:\n%s", stdout.String())
	}
}

func TestCLIExpvarMetrics(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-metrics", "-metrics-backend", "expvar", "-flibbers", "0"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	_, snapshot, ok := strings.Cut(stdout.String(), "#### Bar\n")
	if !ok {
		t.Fatalf("missing Bar section:\n%s", stdout.String())
	}
	// the JSON document follows the blank line closing the Bar section
	_, doc, ok := strings.Cut(snapshot, "\n\n")
	if !ok {
		t.Fatalf("missing metrics document:\n%s", stdout.String())
	}
	var snap core.ExpvarMetricsSnapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		t.Fatalf("decode snapshot: %v\n%s", err, doc)
	}
	if snap.Calls[core.OpYibble]["success"] != 2 || snap.Calls[core.OpWibble]["success"] != 1 {
		t.Fatalf("unexpected counts %+v", snap.Calls)
	}
}

func TestCLITraceWritesSpans(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-trace", "-flibbers", "0"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	dec := json.NewDecoder(&stderr)
	var ops []string
	for dec.More() {
		var entry core.JSONTraceEntry
		if err := dec.Decode(&entry); err != nil {
			t.Fatalf("decode span: %v", err)
		}
		if entry.Status != "success" {
			t.Fatalf("unexpected span %+v", entry)
		}
		ops = append(ops, entry.Operation)
	}
	want := []string{core.OpWibble, core.OpZorble, core.OpUnwibble, core.OpSplinx, core.OpYibble, core.OpYibble}
	if strings.Join(ops, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected spans %v, want %v", ops, want)
	}
}

func TestCLIInvalidArguments(t *testing.T) {
	cases := [][]string{
		{"-unknown"},
		{"-yibble-rule", "triple"},
		{"-log-level", "loud"},
		{"-flibbers", "-1"},
		{"-metrics-backend", "statsd"},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		if code := cli(args, &stdout, &stderr); code != 2 {
			t.Fatalf("args %v: expected exit 2, got %d", args, code)
		}
		if stderr.Len() == 0 {
			t.Fatalf("args %v: expected a diagnostic on stderr", args)
		}
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := run(ctx, core.NewService(), 1, &out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "#### Foo\n") {
		t.Fatalf("expected initial render before failure, got %q", out.String())
	}
}

func TestMainUsesExitFunc(t *testing.T) {
	got := -1
	orig := exitFunc
	origArgs := os.Args
	exitFunc = func(code int) { got = code }
	os.Args = []string{"flibber-demo", "-flibbers", "0"}
	defer func() {
		exitFunc = orig
		os.Args = origArgs
	}()

	main()
	if got != 0 {
		t.Fatalf("expected main to exit 0, got %d", got)
	}
}
