package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"overdub/internal/services"
)

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = NewComponentLogger(logger, "pipeline")
	logger.Info("stage started", String("stage", "preprocess"), Int("utterances", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO pipeline: stage started") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, "stage=preprocess") || !strings.Contains(line, "utterances=3") {
		t.Fatalf("attributes missing from %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("saved", String("path", "/tmp/out dir/final.mp4"))
	if !strings.Contains(buf.String(), `path="/tmp/out dir/final.mp4"`) {
		t.Fatalf("expected quoted value in %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record should pass: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = services.WithStage(ctx, "translate")
	WithContext(ctx, logger).Info("working")

	line := buf.String()
	if !strings.Contains(line, "run_id=run-42") || !strings.Contains(line, "stage=translate") {
		t.Fatalf("context fields missing from %q", line)
	}
}
