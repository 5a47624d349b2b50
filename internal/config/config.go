package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceKV   = "kv"
)

// DefaultSourceKey is the key read by the kv source when none is configured.
const DefaultSourceKey = "catalog:data"

// Config holds the catalog service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int     `yaml:"port"`
	ReadTimeoutSec  int     `yaml:"read_timeout_sec"`
	WriteTimeoutSec int     `yaml:"write_timeout_sec"`
	ShutdownSec     int     `yaml:"shutdown_timeout_sec"`
	RateLimitRPS    float64 `yaml:"rate_limit_rps"` // per client IP, 0 = disabled
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
}

// CatalogConfig holds catalog loading and paging settings.
type CatalogConfig struct {
	Source          SourceConfig `yaml:"source"`
	Locale          string       `yaml:"locale"` // BCP 47 tag for facet ordering
	DefaultPageSize int          `yaml:"default_page_size"`
	MaxPageSize     int          `yaml:"max_page_size"`
	LoadTimeoutSec  int          `yaml:"load_timeout_sec"`
}

// SourceConfig selects where the catalog document is read from.
type SourceConfig struct {
	Kind string `yaml:"kind"` // file, http, kv (default: file)
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
	Key  string `yaml:"key"`
}

// DatabaseConfig holds database connection settings. Used by the kv source.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Standalone       bool     `yaml:"standalone"` // skip cluster discovery
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML config document.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
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
		c.HTTP.Port = 8080
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
	if c.HTTP.RateLimitRPS > 0 && c.HTTP.RateLimitBurst <= 0 {
		c.HTTP.RateLimitBurst = int(c.HTTP.RateLimitRPS) * 2
		if c.HTTP.RateLimitBurst < 1 {
			c.HTTP.RateLimitBurst = 1
		}
	}
	if c.Catalog.Source.Kind == "" {
		c.Catalog.Source.Kind = SourceFile
	}
	if c.Catalog.Source.Kind == SourceFile && c.Catalog.Source.Path == "" {
		c.Catalog.Source.Path = "./data.json"
	}
	if c.Catalog.Source.Kind == SourceKV && c.Catalog.Source.Key == "" {
		c.Catalog.Source.Key = DefaultSourceKey
	}
	if c.Catalog.Locale == "" {
		c.Catalog.Locale = "en"
	}
	if c.Catalog.DefaultPageSize <= 0 {
		c.Catalog.DefaultPageSize = 100
	}
	if c.Catalog.MaxPageSize <= 0 {
		c.Catalog.MaxPageSize = 1000
	}
	if c.Catalog.LoadTimeoutSec <= 0 {
		c.Catalog.LoadTimeoutSec = 30
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimitRPS < 0 {
		return fmt.Errorf("http.rate_limit_rps must not be negative, got %v", c.HTTP.RateLimitRPS)
	}
	if c.Catalog.DefaultPageSize > c.Catalog.MaxPageSize {
		return fmt.Errorf(
			"catalog.default_page_size (%d) must not exceed catalog.max_page_size (%d)",
			c.Catalog.DefaultPageSize, c.Catalog.MaxPageSize,
		)
	}
	if _, err := language.Parse(c.Catalog.Locale); err != nil {
		return fmt.Errorf("catalog.locale %q is not a valid BCP 47 tag: %w", c.Catalog.Locale, err)
	}

	switch c.Catalog.Source.Kind {
	case SourceFile:
		// path defaulted
	case SourceHTTP:
		if c.Catalog.Source.URL == "" {
			return fmt.Errorf("catalog.source.url is required for kind %q", SourceHTTP)
		}
	case SourceKV:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for kind %q", SourceKV)
		}
	default:
		return fmt.Errorf("catalog.source.kind must be file, http or kv, got %q", c.Catalog.Source.Kind)
	}

	switch c.Database.Driver {
	case "valkey", "redis":
	default:
		return fmt.Errorf("database.driver must be \"valkey\" or \"redis\", got %q", c.Database.Driver)
	}
	return nil
}

// LocaleTag returns the parsed catalog locale, falling back to English.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Catalog.Locale)
	if err != nil {
		return language.English
	}
	return tag
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
