package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/portfolio-admin/pkg/logging"
)

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level    logging.Level
		expected slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("unknown"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.expected {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	for _, level := range []logging.Level{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError} {
		if err := level.Validate(); err != nil {
			t.Errorf("Level(%q).Validate() failed: %v", level, err)
		}
	}
	if err := logging.Level("loud").Validate(); err == nil {
		t.Error("Level(\"loud\").Validate() succeeded, want error")
	}

	for _, format := range []logging.Format{logging.FormatText, logging.FormatJSON} {
		if err := format.Validate(); err != nil {
			t.Errorf("Format(%q).Validate() failed: %v", format, err)
		}
	}
	if err := logging.Format("xml").Validate(); err == nil {
		t.Error("Format(\"xml\").Validate() succeeded, want error")
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "system", "client")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains info record: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "system=client") {
		t.Errorf("output = %q, want warn record with system attribute", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON}, &buf)

	logger.Debug("request completed", "status", 200)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "request completed" {
		t.Errorf("msg = %v, want %q", record["msg"], "request completed")
	}
	if record["status"] != float64(200) {
		t.Errorf("status = %v, want 200", record["status"])
	}
}

func TestDiscard(t *testing.T) {
	if logging.Discard() == nil {
		t.Fatal("Discard() returned nil logger")
	}
}
