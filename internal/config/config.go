package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"hellonerd/internal/logging"

	"gopkg.in/yaml.v3"
)

// Config holds all hellonerd configuration.
type Config struct {
	Name string `yaml:"name"`

	// Backend endpoint the page fetches from
	Endpoint EndpointConfig `yaml:"endpoint"`

	// Page appearance
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// EndpointConfig configures the hello request.
type EndpointConfig struct {
	BaseURL string `yaml:"base_url"`
	Path    string `yaml:"path"`
	// Timeout bounds the request; empty or "0" means no timeout.
	Timeout string `yaml:"timeout"`
}

// UIConfig configures the rendered page.
type UIConfig struct {
	Heading string `yaml:"heading"`
	Label   string `yaml:"label"` // text before the display state
	Theme   string `yaml:"theme"` // "light", "dark" or "auto"
}

// LoggingConfig configures categorized file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name: "hellonerd",
		Endpoint: EndpointConfig{
			BaseURL: "http://localhost:8080",
			Path:    "/api/hello",
		},
		UI: UIConfig{
			Heading: "Hello from the backend",
			Label:   "Backend says:",
			Theme:   "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file location for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".hello", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logging.Get(logging.CategoryConfig).Debug("no config at %s, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if u := os.Getenv("HELLO_BASE_URL"); u != "" {
		c.Endpoint.BaseURL = u
	}
	if theme := os.Getenv("HELLO_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// GetTimeout returns the request timeout. Zero means none.
func (c *Config) GetTimeout() time.Duration {
	if c.Endpoint.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Endpoint.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// LoggingOptions converts the logging section for logging.Initialize.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		DebugMode:  c.Logging.DebugMode,
		Level:      c.Logging.Level,
		Categories: c.Logging.Categories,
		JSONFormat: c.Logging.JSONFormat,
	}
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid endpoint base_url %q: %w", c.Endpoint.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint base_url %q: scheme must be http or https", c.Endpoint.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint base_url %q: missing host", c.Endpoint.BaseURL)
	}

	if c.Endpoint.Timeout != "" {
		if _, err := time.ParseDuration(c.Endpoint.Timeout); err != nil {
			return fmt.Errorf("invalid endpoint timeout %q: %w", c.Endpoint.Timeout, err)
		}
	}

	validTheme := c.UI.Theme == ""
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return nil
}
