package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mojibox/internal/config"
	"mojibox/internal/logging"
)

func TestNewFromConfigDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(nil, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, " WARN shown") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestNewFromConfigJSON(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "info"

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("decoded", logging.Int("units", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if record["level"] != "info" || record["msg"] != "decoded" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
	if record["units"] != float64(3) {
		t.Fatalf("expected units attribute, got %v", record)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")
	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message with caller")
	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "scrub")
	logger.WithGroup("input").Warn("replaced invalid UTF-8",
		logging.Span(3, 4),
		logging.String("note", "two words"),
	)

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{" WARN scrub: replaced invalid UTF-8", "input.span=3-4", `input.note="two words"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as prefix, got %q", line)
	}
}

func TestLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mojibox.log")
	logger, err := logging.New(logging.Options{Level: "error", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("boom")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "ERROR boom") {
		t.Fatalf("unexpected log file contents %q", content)
	}
}

func TestNewRejectsUnknownValues(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "logfmt"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := logging.New(logging.Options{Level: "trace"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestCorrelationIDFlowsIntoLogs(t *testing.T) {
	id := logging.NewCorrelationID()
	if len(id) != 36 {
		t.Fatalf("expected uuid string, got %q", id)
	}
	if other := logging.NewCorrelationID(); other == id {
		t.Fatal("expected distinct correlation ids")
	}

	ctx := logging.WithCorrelationID(context.Background(), id)
	got, ok := logging.CorrelationIDFromContext(ctx)
	if !ok || got != id {
		t.Fatalf("CorrelationIDFromContext = %q, %v", got, ok)
	}

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WithContext(ctx, logger).Warn("tagged")
	if !strings.Contains(buf.String(), "correlation_id="+id) {
		t.Fatalf("expected correlation id in %q", buf.String())
	}
}

func TestBlankCorrelationIDIgnored(t *testing.T) {
	ctx := logging.WithCorrelationID(context.Background(), "  ")
	if _, ok := logging.CorrelationIDFromContext(ctx); ok {
		t.Fatal("expected no correlation id")
	}
	if fields := logging.ContextFields(ctx); len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 100) {
		t.Fatal("nop logger should be disabled")
	}
	logging.NewComponentLogger(nil, "x").Error("discarded")
}
