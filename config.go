package styrene

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
	"github.com/TheOfficialSeb/Styrene/pkg/static"
)

// Config is the application configuration.
type Config struct {
	// Addr is the listen address. Default: ":8080".
	Addr string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown. Default: 10s.
	ShutdownTimeout time.Duration

	// Static configures static file serving.
	Static StaticConfig

	// Dev enables live reload.
	Dev DevConfig

	Metrics MetricsConfig
	Tracing TracingConfig

	// PatternOptions are applied to every route template.
	PatternOptions []pathpattern.Option

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// StaticConfig configures static file serving. Static serving is off
// when both Source and Dir are empty.
type StaticConfig struct {
	// Source provides the files. If nil and Dir is set, files are
	// served from Dir.
	Source static.Source

	// Dir is the local directory. It is also what the dev watcher polls.
	Dir string

	// Prefix is the URL path files are served under. Default: "/".
	Prefix string

	// Index is served for directory requests. Default: "index.html".
	Index string

	// Fallback is served for misses from HTML clients (SPA mode).
	Fallback string

	CacheControl static.CacheStrategy

	// Headers are set on every file response.
	Headers map[string]string
}

// DevConfig configures development mode.
type DevConfig struct {
	// Enabled turns on the file watcher, the reload endpoint and
	// script injection into HTML pages.
	Enabled bool

	// Interval is the watcher polling interval. Default: 100ms.
	Interval time.Duration

	// Ignore lists watcher ignore patterns.
	Ignore []string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool

	// Path is where metrics are exposed. Default: "/metrics".
	Path string

	// Namespace prefixes metric names. Default: "styrene".
	Namespace string

	// Registry receives the collectors. Default: a new registry with
	// the Go and process collectors.
	Registry *prometheus.Registry
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled bool

	// TracerName names the tracer. Default: "styrene".
	TracerName string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Static:          DefaultStaticConfig(),
		Metrics: MetricsConfig{
			Path:      "/metrics",
			Namespace: "styrene",
		},
		Tracing: TracingConfig{
			TracerName: "styrene",
		},
	}
}

// DefaultStaticConfig returns a StaticConfig with sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		Prefix:       "/",
		Index:        "index.html",
		CacheControl: static.CacheOff,
	}
}

// applyDefaults fills zero fields from DefaultConfig.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = def.Static.Prefix
	}
	if c.Static.Index == "" {
		c.Static.Index = def.Static.Index
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = def.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = def.Tracing.TracerName
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
