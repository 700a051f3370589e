package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew_FileOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	log := New(&Config{Level: "info", Format: "json", File: file}, "test")

	log.Info("hello from test", map[string]interface{}{
		FieldRequestID: "req-1",
	})

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !strings.Contains(string(content), "hello from test") {
		t.Errorf("expected message in log file, got: %s", content)
	}
	if !strings.Contains(string(content), `"request_id":"req-1"`) {
		t.Errorf("expected request_id field in log file, got: %s", content)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" || cfg.Format != "console" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxSize == 0 || cfg.MaxBackups == 0 || cfg.MaxAge == 0 {
		t.Errorf("expected rotation defaults, got: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "shouty", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}

	cfg = Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}

	cfg = Config{Level: "debug", Format: "console"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestFields(t *testing.T) {
	m := Fields("endpoint", "transcribe", "status", 200)
	if m["endpoint"] != "transcribe" || m["status"] != 200 {
		t.Errorf("unexpected fields map: %v", m)
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("audit_append", os.ErrPermission)
	if m[FieldOperation] != "audit_append" {
		t.Errorf("unexpected operation: %v", m[FieldOperation])
	}
	if m[FieldError] != os.ErrPermission.Error() {
		t.Errorf("unexpected error field: %v", m[FieldError])
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("transcribe", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", m[FieldDuration])
	}
}
