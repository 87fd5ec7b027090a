package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Name != "pipekit" {
		t.Errorf("expected default name 'pipekit', got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug=true for development")
	}
	if cfg.Logging.ServiceName != "pipekit" {
		t.Errorf("expected logging service name to follow config name, got %q", cfg.Logging.ServiceName)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("expected addr '0.0.0.0:8080', got %q", cfg.Server.Addr())
	}
	if len(cfg.Pipelines.Dirs) != 1 || cfg.Pipelines.Dirs[0] != "./pipelines" {
		t.Errorf("expected default pipeline dir, got %v", cfg.Pipelines.Dirs)
	}
	if cfg.Notify.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3, got %d", cfg.Notify.MaxRetries)
	}
	if cfg.Observability.SampleRate != 1.0 {
		t.Errorf("expected default sample rate 1.0, got %f", cfg.Observability.SampleRate)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"missing name", func(c *Config) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *Config) { c.Environment = "prod" }, "config.environment must be one of"},
		{"invalid port", func(c *Config) { c.Server.Port = 70000 }, "config.server.port"},
		{"negative max parallel", func(c *Config) { c.Engine.MaxParallel = -1 }, "config.engine.max_parallel"},
		{"auth enabled without secret", func(c *Config) { c.Auth.Enabled = true }, "config.auth.secret"},
		{"invalid sample rate", func(c *Config) { c.Observability.SampleRate = 1.5 }, "config.observability.sample_rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}

	cfg := valid()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error for valid config: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: pipekit
environment: staging
version: "1.2.3"
pipelines:
  dirs:
    - /etc/pipekit/pipelines
server:
  port: 9090
engine:
  max_parallel: 4
notify:
  urls:
    - https://hooks.example.com/runs
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %q", cfg.Version)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Engine.MaxParallel != 4 {
		t.Errorf("expected max_parallel 4, got %d", cfg.Engine.MaxParallel)
	}
	if len(cfg.Pipelines.Dirs) != 1 || cfg.Pipelines.Dirs[0] != "/etc/pipekit/pipelines" {
		t.Errorf("expected configured pipeline dir, got %v", cfg.Pipelines.Dirs)
	}
	if len(cfg.Notify.URLs) != 1 {
		t.Errorf("expected one notify URL, got %v", cfg.Notify.URLs)
	}
	// defaults still applied for unset fields
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected default read timeout, got %v", cfg.Server.ReadTimeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	type TestConfig struct {
		Name string `mapstructure:"name"`
	}

	var cfg TestConfig
	// With no config file found, LoadConfig still succeeds with an empty config.
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/pipekit/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("pipekit", LoaderConfig{})
	if files.ConfigFile != "./cmd/pipekit/config.yml" {
		t.Errorf("expected config file at ./cmd/pipekit/config.yml, got %q", files.ConfigFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("pipekit", LoaderConfig{
		ConfigFile: "/etc/pipekit/config.yml",
		EnvFile:    "/etc/pipekit/.env",
	})
	if files.ConfigFile != "/etc/pipekit/config.yml" {
		t.Errorf("expected explicit config path, got %q", files.ConfigFile)
	}
	if files.EnvFile != "/etc/pipekit/.env" {
		t.Errorf("expected explicit env path, got %q", files.EnvFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("SERVER_READ_TIMEOUT")

	want := map[string]bool{
		"server_read_timeout": false,
		"server.read.timeout": false,
		"server.read_timeout": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for key, found := range want {
		if !found {
			t.Errorf("expected variant %q in %v", key, variants)
		}
	}

	single := envKeyVariants("HOME")
	if len(single) != 1 || single[0] != "home" {
		t.Errorf("expected single lowercase variant, got %v", single)
	}
}

func TestWithOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
