package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"

	"github.com/yujingwu/knwl-platform/internal/domain"
)

// Config holds the knwl API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Limits   LimitsConfig   `yaml:"limits"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig maps API keys to the tenants they may act for.
type AuthConfig struct {
	APIKeys map[string][]string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_timeout_sec"`
	MaxBodySize     string `yaml:"max_body_size"` // human size, e.g. "1MB"

	maxBodyBytes int64
}

// MaxBodyBytes returns MaxBodySize in bytes. Valid after Validate.
func (h HTTPConfig) MaxBodyBytes() int64 { return h.maxBodyBytes }

// DatabaseConfig holds embedded database settings.
type DatabaseConfig struct {
	Path          string `yaml:"path"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms"`
	WAL           *bool  `yaml:"wal"`
}

// WALEnabled reports whether write-ahead logging is on (default true).
func (d DatabaseConfig) WALEnabled() bool {
	return d.WAL == nil || *d.WAL
}

// LimitsConfig bounds document payloads and search paging.
type LimitsConfig struct {
	MaxTitleLen     int `yaml:"max_title_len"`
	MaxContentLen   int `yaml:"max_content_len"`
	MaxTags         int `yaml:"max_tags"`
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// Domain converts the section into domain limits.
func (l LimitsConfig) Domain() domain.Limits {
	return domain.Limits{
		MaxTitleLen:     l.MaxTitleLen,
		MaxContentLen:   l.MaxContentLen,
		MaxTags:         l.MaxTags,
		DefaultPageSize: l.DefaultPageSize,
		MaxPageSize:     l.MaxPageSize,
	}
}

// MetricsConfig holds in-process metrics settings.
type MetricsConfig struct {
	MaxTenants int `yaml:"max_tenants"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, applying
// defaults and validating the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodySize == "" {
		c.HTTP.MaxBodySize = "1MB"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/app.db"
	}
	if c.Database.BusyTimeoutMS <= 0 {
		c.Database.BusyTimeoutMS = 5000
	}

	def := domain.DefaultLimits()
	if c.Limits.MaxTitleLen <= 0 {
		c.Limits.MaxTitleLen = def.MaxTitleLen
	}
	if c.Limits.MaxContentLen <= 0 {
		c.Limits.MaxContentLen = def.MaxContentLen
	}
	if c.Limits.MaxTags <= 0 {
		c.Limits.MaxTags = def.MaxTags
	}
	if c.Limits.DefaultPageSize <= 0 {
		c.Limits.DefaultPageSize = def.DefaultPageSize
	}
	if c.Limits.MaxPageSize <= 0 {
		c.Limits.MaxPageSize = def.MaxPageSize
	}
	if c.Metrics.MaxTenants <= 0 {
		c.Metrics.MaxTenants = 10000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	size, err := units.FromHumanSize(c.HTTP.MaxBodySize)
	if err != nil {
		return fmt.Errorf("http.max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("http.max_body_size must be positive, got %q", c.HTTP.MaxBodySize)
	}
	c.HTTP.maxBodyBytes = size

	if c.Limits.DefaultPageSize > c.Limits.MaxPageSize {
		return fmt.Errorf(
			"limits.default_page_size (%d) must not exceed limits.max_page_size (%d)",
			c.Limits.DefaultPageSize, c.Limits.MaxPageSize,
		)
	}
	for key, tenants := range c.Auth.APIKeys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("auth.api_keys: empty key")
		}
		if len(tenants) == 0 {
			return fmt.Errorf("auth.api_keys: key %q has no tenants", redact(key))
		}
		for _, t := range tenants {
			if t == "" {
				return fmt.Errorf("auth.api_keys: key %q lists an empty tenant", redact(key))
			}
		}
	}
	return nil
}

// redact keeps the first characters of a secret for error messages.
func redact(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
