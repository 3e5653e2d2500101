// Package config handles loading and parsing application configuration
// for both binaries (the terminal client and the development backend).
// It supports two sources for the file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Without a file every value comes from the environment or its default,
// so the client starts against http://localhost:5000 out of the box.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the SQLite file used by the development backend.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/users.db"`

	// LogFile receives the terminal client's logs; stdout belongs to the
	// screen. Empty discards them.
	LogFile string `yaml:"log_file" env:"LOG_FILE" env-default:"students-client.log"`

	HTTPServer `yaml:"http_server"`
	Backend    `yaml:"backend"`
}

// HTTPServer holds settings specific to the development backend.
type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:5000"`
}

// Backend tells the client where the /users collection lives.
type Backend struct {
	BaseURL string `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://localhost:5000"`

	// Timeout bounds each request. Zero waits indefinitely.
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"0s"`
}

var validEnvs = map[string]bool{"dev": true, "staging": true, "prod": true}

// Load reads the YAML file at path (environment variables override it),
// or only the environment when path is empty.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if !validEnvs[cfg.Env] {
		return nil, fmt.Errorf("config: unknown env %q", cfg.Env)
	}
	if cfg.Backend.Timeout < 0 {
		return nil, fmt.Errorf("config: negative backend timeout %s", cfg.Backend.Timeout)
	}
	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or --config and
// loads it, exiting the process on any error.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error — if this function returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}
	return cfg
}
