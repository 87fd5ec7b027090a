package logger

import (
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	cfg := &Config{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "my-service")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	cfg := &Config{
		Level:  "not-a-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "svc")
	if l == nil {
		t.Fatal("expected non-nil logger despite invalid level")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected default level info, got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format console, got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected default output stdout, got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{Level: "info", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = &Config{Level: "verbose", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid level")
	}

	cfg = &Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("svc").WithComponent("engine")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "svc" {
		t.Errorf("expected service preserved, got %q", l.service)
	}
}

func TestWithRunAndPipeline(t *testing.T) {
	l := NewDefault("svc").WithPipeline("cd-pipeline").WithRun("run-123")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields("task", "clone", "batch", 2)
	if m["task"] != "clone" {
		t.Errorf("expected task=clone, got %v", m["task"])
	}
	if m["batch"] != 2 {
		t.Errorf("expected batch=2, got %v", m["batch"])
	}
}

func TestFields_OddArgs(t *testing.T) {
	m := Fields("task", "clone", "dangling")
	if len(m) != 1 {
		t.Errorf("expected dangling key dropped, got %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("plan", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", m[FieldDuration])
	}
}

func TestGetGlobalLogger(t *testing.T) {
	globalLogger = nil
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected lazily created global logger")
	}
	if GetGlobalLogger() != l {
		t.Error("expected same global instance")
	}
}
