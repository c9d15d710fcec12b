package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hostprep/hostprep/internal/ports"
)

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn))
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("below-threshold entries were written:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("threshold entries missing:\n%s", out)
	}
}

func TestConsoleLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf))

	logger.Info(context.Background(), "applying step", ports.F("step", "pkg:install:git"))

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("level marker missing: %q", out)
	}
	if !strings.Contains(out, "applying step") || !strings.Contains(out, "step=pkg:install:git") {
		t.Errorf("message or field missing: %q", out)
	}
}

func TestConsoleLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithJSONFormat(true))

	logger.Error(context.Background(), "step failed", ports.F("step", "svc:enable:docker"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["msg"] != "step failed" {
		t.Errorf("msg = %v, want %q", entry["msg"], "step failed")
	}
	if entry["step"] != "svc:enable:docker" {
		t.Errorf("step field = %v", entry["step"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("time field missing")
	}
}

func TestConsoleLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf)).With(ports.F("run", "abc123"))

	logger.Info(context.Background(), "planned", ports.F("steps", 4))

	out := buf.String()
	if !strings.Contains(out, "run=abc123") || !strings.Contains(out, "steps=4") {
		t.Errorf("inherited or call fields missing: %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNopLogger()

	// Must not panic and With must keep returning a usable logger.
	logger.With(ports.F("k", "v")).Info(context.Background(), "ignored")
}
