package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want %q", cfg.Env, "dev")
	}
	if cfg.Backend.BaseURL != "http://localhost:5000" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 0 {
		t.Errorf("Backend.Timeout = %s, want 0", cfg.Backend.Timeout)
	}
	if cfg.HTTPServer.Addr != "localhost:5000" {
		t.Errorf("HTTPServer.Addr = %q", cfg.HTTPServer.Addr)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
env: "staging"
storage_path: "/tmp/users.db"
log_file: ""
http_server:
  address: "0.0.0.0:9000"
backend:
  base_url: "http://api.internal:9000"
  timeout: 5s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "staging" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.StoragePath != "/tmp/users.db" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.Addr != "0.0.0.0:9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.BaseURL != "http://api.internal:9000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "env: dev\nbackend:\n  base_url: http://from-file\n")
	t.Setenv("BACKEND_BASE_URL", "http://from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "http://from-env" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "http://from-env")
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Load() error = nil")
		}
	})

	t.Run("unknown env", func(t *testing.T) {
		t.Setenv("ENV", "qa")
		if _, err := Load(""); err == nil {
			t.Error("Load() error = nil")
		}
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("BACKEND_TIMEOUT", "soon")
		if _, err := Load(""); err == nil {
			t.Error("Load() error = nil")
		}
	})
}
