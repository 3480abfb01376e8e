package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
	if Safe() == nil {
		t.Fatal("safe logger is nil after initialization")
	}
}

func TestInitWithWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "analysis complete",
		String("dataset", "bundled"),
		Int("records", 3),
		Int64("seed", 42),
		Bool("sparse", false),
		Duration("took", time.Millisecond),
		Float64("density", 0.5),
		Error(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{"analysis complete", "dataset=bundled", "records=3", "seed=42", "sparse=false", "took=1ms", "error=boom", "source="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestInitWithNilWriter(t *testing.T) {
	if err := InitWithWriter(nil); err == nil {
		t.Fatal("expected error for nil writer")
	}
}

func TestSetLevelString(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	Get().Info(ctx, "hidden")
	Get().Warn(ctx, "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %q", out)
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("analyzer")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	namedLogger.Info(context.Background(), "test message", String("k", "v"))
	if !strings.Contains(buf.String(), "analyzer.k=v") {
		t.Errorf("named group missing from output: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l == nil {
		t.Fatal("discard logger is nil")
	}
	// Must not panic or write anywhere.
	l.Named("x").Info(context.Background(), "dropped", Int("n", 1))
}
