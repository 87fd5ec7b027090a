package config

import (
	"fmt"
	"time"
)

// Config is the full pipekit configuration: the service basics plus
// the pipeline, server, engine, auth and notification sections.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Pipelines     PipelinesConfig     `yaml:"pipelines" mapstructure:"pipelines"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Engine        EngineConfig        `yaml:"engine" mapstructure:"engine"`
	Auth          AuthConfig          `yaml:"auth" mapstructure:"auth"`
	Notify        NotifyConfig        `yaml:"notify" mapstructure:"notify"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// PipelinesConfig locates pipeline and workflow definitions on disk.
type PipelinesConfig struct {
	// Dirs are searched in order for {name}.yaml / {name}.yml.
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	// H2C enables cleartext HTTP/2.
	H2C bool `yaml:"h2c" mapstructure:"h2c"`
	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	// RateLimitPerMinute throttles run submissions per client (0 = off).
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" mapstructure:"rate_limit_per_minute"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EngineConfig configures run execution.
type EngineConfig struct {
	// MaxParallel caps concurrent tasks per batch (0 = unlimited).
	MaxParallel int `yaml:"max_parallel" mapstructure:"max_parallel"`
}

// AuthConfig configures the JWT bearer middleware on mutating routes.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Secret  string `yaml:"secret" mapstructure:"secret"`
	Issuer  string `yaml:"issuer" mapstructure:"issuer"`
}

// NotifyConfig configures webhook notifications for finished runs.
type NotifyConfig struct {
	URLs       []string      `yaml:"urls" mapstructure:"urls"`
	MaxRetries int           `yaml:"max_retries" mapstructure:"max_retries"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ObservabilityConfig configures the OTLP exporters.
type ObservabilityConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// ApplyDefaults fills in defaults for every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "pipekit"
	}
	c.ServiceConfig.ApplyDefaults()

	if len(c.Pipelines.Dirs) == 0 {
		c.Pipelines.Dirs = []string{"./pipelines"}
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 4 << 20
	}
	if c.Notify.MaxRetries == 0 {
		c.Notify.MaxRetries = 3
	}
	if c.Notify.Timeout == 0 {
		c.Notify.Timeout = 10 * time.Second
	}
	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1.0
	}
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config.server.port must be between 1 and 65535 (got: %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("config.server.max_body_bytes must not be negative (got: %d)", c.Server.MaxBodyBytes)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("config.server.rate_limit_per_minute must not be negative (got: %d)", c.Server.RateLimitPerMinute)
	}
	if c.Engine.MaxParallel < 0 {
		return fmt.Errorf("config.engine.max_parallel must not be negative (got: %d)", c.Engine.MaxParallel)
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("config.auth.secret is required when auth is enabled")
	}
	if c.Notify.MaxRetries < 0 {
		return fmt.Errorf("config.notify.max_retries must not be negative (got: %d)", c.Notify.MaxRetries)
	}
	if c.Observability.SampleRate < 0 || c.Observability.SampleRate > 1 {
		return fmt.Errorf("config.observability.sample_rate must be between 0 and 1 (got: %f)", c.Observability.SampleRate)
	}
	return nil
}

// Load loads, defaults and validates the pipekit configuration.
func Load(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig("pipekit", &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
