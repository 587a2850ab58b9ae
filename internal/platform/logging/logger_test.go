package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestNewJSON_WritesServiceAndRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(Options{
		Level:          LevelInfo,
		ServiceName:    "teamsync-api",
		ServiceVersion: "test",
		Environment:    "dev",
		Output:         &buf,
	})

	ctx := WithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "fixture loaded", "fixture_id", "fx-1", "error", errors.New("boom"))

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("unmarshal log entry: %v (raw=%q)", err, buf.String())
	}

	want := map[string]string{
		"msg":        "fixture loaded",
		"service":    "teamsync-api",
		"version":    "test",
		"env":        "dev",
		"request_id": "req-42",
		"fixture_id": "fx-1",
		"error":      "boom",
		"level":      "INFO",
	}
	for key, value := range want {
		if got, _ := entry[key].(string); got != value {
			t.Fatalf("unexpected %s: got=%v want=%s", key, entry[key], value)
		}
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(Options{Level: LevelWarn, Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info entry should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("expected warn entry in output: %s", out)
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	fields := zapFields([]any{"a", 1, "dangling"})
	if len(fields) != 2 {
		t.Fatalf("unexpected field count: got=%d want=2", len(fields))
	}
	if fields[1].Key != "dangling" {
		t.Fatalf("unexpected dangling key: %s", fields[1].Key)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}
