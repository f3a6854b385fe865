package finboard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes from YAML strings such as "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("finboard: parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config carries the settings the dashboard server boots with.
type Config struct {
	Listen     string   `json:"listen" yaml:"listen"`
	BasePath   string   `json:"base_path" yaml:"base_path"`
	Theme      string   `json:"theme" yaml:"theme"`
	AssetsHost string   `json:"assets_host,omitempty" yaml:"assets_host,omitempty"`
	CacheTTL   Duration `json:"cache_ttl" yaml:"cache_ttl"`
	LogLevel   string   `json:"log_level" yaml:"log_level"`
	LogFormat  string   `json:"log_format" yaml:"log_format"`
	Source     string   `json:"-" yaml:"-"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Listen:    ":8050",
		BasePath:  "/",
		Theme:     "westeros",
		CacheTTL:  Duration(defaultMarkupTTL),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadConfig reads settings from path, falling back to DefaultConfig when
// path is empty.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := ReadConfig(path)
	if err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

// ReadConfig loads a config file from disk.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("finboard: open config %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("finboard: decode config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// DecodeConfig reads settings from any reader. Unknown fields are rejected.
func DecodeConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("finboard: config is empty")
		}
		return nil, fmt.Errorf("finboard: parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnvOverrides replaces settings from FINBOARD_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv("FINBOARD_LISTEN")); v != "" {
		c.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("FINBOARD_BASE_PATH")); v != "" {
		c.BasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("FINBOARD_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("FINBOARD_ASSETS_HOST")); v != "" {
		c.AssetsHost = v
	}
	if v := strings.TrimSpace(os.Getenv("FINBOARD_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("FINBOARD_LOG_FORMAT")); v != "" {
		c.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("FINBOARD_CACHE_TTL")); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("finboard: parse FINBOARD_CACHE_TTL %q: %w", v, err)
		}
		c.CacheTTL = Duration(parsed)
	}
	return c.Validate()
}

// Validate ensures the settings are usable.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("finboard: listen address is required")
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("finboard: base path %q must start with /", c.BasePath)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("finboard: unsupported log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("finboard: unsupported log format %q", c.LogFormat)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("finboard: cache ttl must not be negative")
	}
	return nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Listen == "" {
		c.Listen = defaults.Listen
	}
	if c.BasePath == "" {
		c.BasePath = defaults.BasePath
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaults.CacheTTL
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
}
