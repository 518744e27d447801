package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// =============================================================================
// CONFIG FILE TESTS
// =============================================================================

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HELLO_BASE_URL", "")
	t.Setenv("HELLO_THEME", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Endpoint.Path != "/api/hello" {
		t.Errorf("expected Path=/api/hello, got %s", cfg.Endpoint.Path)
	}
	if cfg.Endpoint.BaseURL != "http://localhost:8080" {
		t.Errorf("expected BaseURL=http://localhost:8080, got %s", cfg.Endpoint.BaseURL)
	}
	if cfg.UI.Heading != "Hello from the backend" {
		t.Errorf("expected default heading, got %q", cfg.UI.Heading)
	}
	if cfg.GetTimeout() != 0 {
		t.Errorf("expected no default timeout, got %v", cfg.GetTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := DefaultPath(t.TempDir())

	cfg := DefaultConfig()
	cfg.Endpoint.BaseURL = "https://backend.example"
	cfg.Endpoint.Timeout = "5s"
	cfg.UI.Heading = "Greetings"
	cfg.Logging.DebugMode = true
	cfg.Logging.Categories = map[string]bool{"ui": false}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
	if loaded.GetTimeout() != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", loaded.GetTimeout())
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  heading: Custom\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.Heading != "Custom" {
		t.Errorf("expected heading Custom, got %s", cfg.UI.Heading)
	}
	if cfg.Endpoint.Path != "/api/hello" {
		t.Errorf("expected default path to survive, got %s", cfg.Endpoint.Path)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("endpoint: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https", func(c *Config) { c.Endpoint.BaseURL = "https://x.example:9000" }, false},
		{"bad scheme", func(c *Config) { c.Endpoint.BaseURL = "ftp://x.example" }, true},
		{"no host", func(c *Config) { c.Endpoint.BaseURL = "http://" }, true},
		{"bad timeout", func(c *Config) { c.Endpoint.Timeout = "soon" }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"empty theme", func(c *Config) { c.UI.Theme = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestGetTimeout_InvalidFallsBackToNone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint.Timeout = "-3s"
	if cfg.GetTimeout() != 0 {
		t.Errorf("negative timeout should mean none, got %v", cfg.GetTimeout())
	}
}

func TestLoggingOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.DebugMode = true
	cfg.Logging.Level = "debug"
	opts := cfg.LoggingOptions()
	if !opts.DebugMode || opts.Level != "debug" {
		t.Errorf("unexpected logging options: %+v", opts)
	}
}
