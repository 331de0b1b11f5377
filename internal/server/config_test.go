package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/sip-planner/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("expected default address, got %q", cfg.Address)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Errorf("expected default body size, got %d", cfg.BodySizeBytes())
	}
	if cfg.ShutdownTimeoutDuration() != constants.DefaultShutdownTimeoutSeconds*time.Second {
		t.Errorf("expected default shutdown timeout, got %s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	contents := []byte(`address: 127.0.0.1:9000
maxBodySize: 1M
readTimeout: 3
writeTimeout: 4
logging:
  level: debug
  format: console
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Errorf("expected address override, got %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != 1024*1024 {
		t.Errorf("expected body size override, got %d", cfg.BodySizeBytes())
	}
	if cfg.ReadTimeoutDuration() != 3*time.Second || cfg.WriteTimeoutDuration() != 4*time.Second {
		t.Errorf("unexpected timeouts %s/%s", cfg.ReadTimeoutDuration(), cfg.WriteTimeoutDuration())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte("address: 127.0.0.1:9000\n"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	t.Setenv("SIP_SERVER_ADDRESS", ":7070")
	t.Setenv("SIP_SERVER_MAX_BODY_SIZE", "8K")
	t.Setenv("SIP_SERVER_SHUTDOWN_TIMEOUT", "2")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":7070" {
		t.Errorf("expected env address, got %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != 8*1024 {
		t.Errorf("expected env body size, got %d", cfg.BodySizeBytes())
	}
	if cfg.ShutdownTimeoutDuration() != 2*time.Second {
		t.Errorf("expected env shutdown timeout, got %s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("maxBodySize: invalid"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid size but got nil")
	}

	t.Setenv("SIP_SERVER_READ_TIMEOUT", "soon")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for non-numeric environment timeout")
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":        constants.DefaultMaxBodySizeBytes,
		"1024":    1024,
		"512b":    512,
		"64K":     64 * 1024,
		"1m":      1024 * 1024,
		"  4096 ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, input := range []string{"1G", "abc"} {
		if _, err := ParseSize(input); err == nil {
			t.Errorf("ParseSize(%q) expected error", input)
		}
	}
}
