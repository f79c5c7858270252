package rpn

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LevelInfo, &buf).(*textLogger)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.With(map[string]any{"token": "+", "depth": 1, "note": "two words"}).Warnf("failed %d", 7)
	l.Debugf("hidden")

	want := "[WARN] 2024-01-02T03:04:05Z failed 7 depth=1 note=\"two words\" token=+\n"
	if got := buf.String(); got != want {
		t.Errorf("log output = %q, want %q", got, want)
	}
}

func TestLoggerLayout(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithLayout(LevelDebug, &buf, "%H:%M").(*textLogger)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	l.Debugf("x")
	if got := buf.String(); got != "[DEBUG] 03:04 x\n" {
		t.Errorf("log output = %q", got)
	}

	buf.Reset()
	NewLoggerWithLayout(LevelDebug, &buf, "").Infof("no time")
	if got := buf.String(); got != "[INFO] no time\n" {
		t.Errorf("log output = %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   LevelError,
		"WARNING": LevelWarn,
		"info":    LevelInfo,
		"Debug":   LevelDebug,
		"bogus":   LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEvaluatorLogging(t *testing.T) {
	var buf bytes.Buffer
	e := New(Options{Logger: NewLoggerWithLayout(LevelDebug, &buf, "")})

	if _, err := e.Evaluate("2 3 +"); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	for _, want := range []string{
		"[DEBUG] push 2 depth=1\n",
		"[DEBUG] push 3 depth=2\n",
		"[DEBUG] reduce 2 + 3 = 5 depth=1\n",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if _, err := e.Evaluate("2 0 /"); err == nil {
		t.Fatal("Evaluate() expected error")
	}
	want := "[WARN] evaluation failed: division by zero depth=2 kind=DivisionByZero offset=4 token=/\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("log output = %q, want suffix %q", buf.String(), want)
	}
}

func TestNoopLoggerDiscards(t *testing.T) {
	l := NewNoopLogger()
	if l.With(map[string]any{"a": 1}) != l {
		t.Error("noop With() returned a different logger")
	}
	l.Errorf("nothing %d", 1)
}
