package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	styrene "github.com/TheOfficialSeb/Styrene"
	"github.com/TheOfficialSeb/Styrene/internal/errors"
	"github.com/TheOfficialSeb/Styrene/pkg/static"
)

const (
	// JSONFileName is the JSON configuration file name.
	JSONFileName = "styrene.json"

	// TOMLFileName is the TOML configuration file name.
	TOMLFileName = "styrene.toml"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default listen host. Empty means all interfaces.
	DefaultHost = ""
)

// FileNames lists the configuration file names in lookup order.
var FileNames = []string{JSONFileName, TOMLFileName}

// Config represents a styrene.json or styrene.toml file.
type Config struct {
	Server  ServerConfig  `json:"server" toml:"server"`
	Static  StaticConfig  `json:"static" toml:"static"`
	Dev     DevConfig     `json:"dev" toml:"dev"`
	Metrics MetricsConfig `json:"metrics" toml:"metrics"`
	Tracing TracingConfig `json:"tracing" toml:"tracing"`
	Log     LogConfig     `json:"log" toml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string   `json:"host,omitempty" toml:"host"`
	Port            int      `json:"port,omitempty" toml:"port"`
	ReadTimeout     Duration `json:"readTimeout,omitempty" toml:"readTimeout"`
	WriteTimeout    Duration `json:"writeTimeout,omitempty" toml:"writeTimeout"`
	ShutdownTimeout Duration `json:"shutdownTimeout,omitempty" toml:"shutdownTimeout"`
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the local directory to serve. Ignored when S3 is set.
	Dir string `json:"dir,omitempty" toml:"dir"`

	// Prefix is the URL path files are served under.
	Prefix string `json:"prefix,omitempty" toml:"prefix"`

	Index    string `json:"index,omitempty" toml:"index"`
	Fallback string `json:"fallback,omitempty" toml:"fallback"`

	// Cache is "off", "no-store" or "production".
	Cache string `json:"cache,omitempty" toml:"cache"`

	Headers map[string]string `json:"headers,omitempty" toml:"headers"`

	S3 *S3Config `json:"s3,omitempty" toml:"s3"`
}

// S3Config selects an S3 bucket as the static file source.
type S3Config struct {
	Bucket string `json:"bucket" toml:"bucket"`
	Prefix string `json:"prefix,omitempty" toml:"prefix"`
	Region string `json:"region,omitempty" toml:"region"`

	// Endpoint overrides the service endpoint (MinIO, LocalStack).
	Endpoint  string `json:"endpoint,omitempty" toml:"endpoint"`
	PathStyle bool   `json:"pathStyle,omitempty" toml:"pathStyle"`
}

// DevConfig contains development mode configuration.
type DevConfig struct {
	Reload   bool     `json:"reload,omitempty" toml:"reload"`
	Interval Duration `json:"interval,omitempty" toml:"interval"`
	Ignore   []string `json:"ignore,omitempty" toml:"ignore"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" toml:"enabled"`
	Path      string `json:"path,omitempty" toml:"path"`
	Namespace string `json:"namespace,omitempty" toml:"namespace"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" toml:"enabled"`
	TracerName string `json:"tracerName,omitempty" toml:"tracerName"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `json:"level,omitempty" toml:"level"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" toml:"format"`
}

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Static: StaticConfig{
			Prefix: "/",
			Index:  "index.html",
			Cache:  "off",
		},
		Dev: DevConfig{
			Interval: Duration(100 * time.Millisecond),
		},
		Metrics: MetricsConfig{
			Path:      "/metrics",
			Namespace: "styrene",
		},
		Tracing: TracingConfig{
			TracerName: "styrene",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from dir, trying each of FileNames.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("C001").
		WithDetail("No " + JSONFileName + " or " + TOMLFileName + " found in " + dir)
}

// LoadFile reads configuration from path. The format follows the file
// extension. Defaults fill any field the file leaves out.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").WithDetail(path + " does not exist")
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.New("C002").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid TOML")
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("C002").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
		}
	default:
		return nil, errors.New("C002").
			WithDetail("Unsupported config file extension " + strconv.Quote(filepath.Ext(path))).
			WithSuggestion("Use a .json or .toml file")
	}

	cfg.configPath = path
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// resolve makes p relative to the config file directory.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.configPath == "" {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Validate checks the configuration for invalid values. The returned
// error names the offending field.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", strconv.Itoa(c.Server.Port), "Use a port between 0 and 65535")
	}
	durations := []struct {
		field string
		value Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
		{"dev.interval", c.Dev.Interval},
	}
	for _, d := range durations {
		if d.value < 0 {
			return invalid(d.field, time.Duration(d.value).String(), "Durations must not be negative")
		}
	}

	if !strings.HasPrefix(c.Static.Prefix, "/") {
		return invalid("static.prefix", c.Static.Prefix, `The prefix must start with "/"`)
	}
	if _, ok := static.ParseCacheStrategy(c.Static.Cache); !ok {
		return invalid("static.cache", c.Static.Cache, `Use "off", "no-store" or "production"`)
	}
	if s3cfg := c.Static.S3; s3cfg != nil {
		if s3cfg.Bucket == "" {
			return invalid("static.s3.bucket", "", "Name the bucket to serve from")
		}
		if s3cfg.Region == "" && os.Getenv("AWS_REGION") == "" {
			return invalid("static.s3.region", "", "Set static.s3.region or AWS_REGION")
		}
		if c.Dev.Reload {
			return invalid("dev.reload", "true", "Live reload watches a local directory; unset static.s3 in development")
		}
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path", c.Metrics.Path, `The path must start with "/"`)
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return invalid("log.level", c.Log.Level, `Use "debug", "info", "warn" or "error"`)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return invalid("log.format", c.Log.Format, `Use "text" or "json"`)
	}

	return nil
}

func invalid(field, value, suggestion string) error {
	return errors.New("C003").
		WithDetail(field + " = " + strconv.Quote(value)).
		WithSuggestion(suggestion)
}

// ToApp converts the file configuration into an application Config.
// It validates first, so callers need not.
func (c *Config) ToApp(logger *slog.Logger) (styrene.Config, error) {
	if err := c.Validate(); err != nil {
		return styrene.Config{}, err
	}

	cache, _ := static.ParseCacheStrategy(c.Static.Cache)

	cfg := styrene.DefaultConfig()
	cfg.Addr = c.Addr()
	cfg.ReadTimeout = time.Duration(c.Server.ReadTimeout)
	cfg.WriteTimeout = time.Duration(c.Server.WriteTimeout)
	cfg.ShutdownTimeout = time.Duration(c.Server.ShutdownTimeout)
	cfg.Static = styrene.StaticConfig{
		Prefix:       c.Static.Prefix,
		Index:        c.Static.Index,
		Fallback:     c.Static.Fallback,
		CacheControl: cache,
		Headers:      c.Static.Headers,
	}
	if c.Static.S3 != nil {
		cfg.Static.Source = static.NewS3Source(newS3Client(c.Static.S3), c.Static.S3.Bucket, c.Static.S3.Prefix)
	} else {
		cfg.Static.Dir = c.resolve(c.Static.Dir)
	}
	cfg.Dev = styrene.DevConfig{
		Enabled:  c.Dev.Reload,
		Interval: time.Duration(c.Dev.Interval),
		Ignore:   c.Dev.Ignore,
	}
	cfg.Metrics.Enabled = c.Metrics.Enabled
	cfg.Metrics.Path = c.Metrics.Path
	cfg.Metrics.Namespace = c.Metrics.Namespace
	cfg.Tracing.Enabled = c.Tracing.Enabled
	cfg.Tracing.TracerName = c.Tracing.TracerName
	cfg.Logger = logger

	return cfg, nil
}

// newS3Client builds a client from the config and the standard AWS_*
// environment variables. Without credentials, requests are anonymous.
func newS3Client(sc *S3Config) *s3.Client {
	region := sc.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}

	opts := s3.Options{
		Region:       region,
		UsePathStyle: sc.PathStyle,
		Credentials:  aws.AnonymousCredentials{},
	}
	if sc.Endpoint != "" {
		opts.BaseEndpoint = aws.String(sc.Endpoint)
	}
	if os.Getenv("AWS_ACCESS_KEY_ID") != "" {
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials))
	}
	return s3.New(opts)
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must both be set")
	}
	return creds, nil
}

// Logger builds the logger described by the log section.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists reports whether dir contains a configuration file.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindConfigFile walks up from startDir and returns the first
// configuration file found.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C001").
				WithDetail("No " + JSONFileName + " or " + TOMLFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Create " + JSONFileName + " or pass --config")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest configuration file above the
// working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	path, err := FindConfigFile(wd)
	if err != nil {
		return nil, err
	}

	return LoadFile(path)
}
