package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitProductionWritesJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	flush := Init(&buf, false, "")
	defer flush()

	slog.Debug("hidden")
	slog.Info("goal store ready", "goals", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want only the info record: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if record["msg"] != "goal store ready" || record["goals"] != float64(3) {
		t.Errorf("unexpected record %v", record)
	}
}

func TestInitDevelopmentLogsDebug(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(&buf, true, "")()

	slog.Debug("goal status derived", "goal_id", "g1")
	if !strings.Contains(buf.String(), "goal_id=g1") {
		t.Errorf("debug record missing from %q", buf.String())
	}
}
