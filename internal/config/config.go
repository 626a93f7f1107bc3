package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/4ast4orward/To-do-List/internal/engine"
)

const (
	EnvDBPath   = "TODO_DB_PATH"
	EnvConfig   = "TODO_CONFIG"
	EnvLogLevel = "TODO_LOG_LEVEL"
)

type Config struct {
	Storage Storage      `yaml:"storage"`
	Log     Log          `yaml:"log"`
	Rules   engine.Rules `yaml:"rules"`
}

type Storage struct {
	// DBPath is the SQLite file. Empty means ~/.todo.db.
	DBPath string `yaml:"db_path"`
}

type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "warn"
	}
	c.Rules.ApplyDefaults()
}

// Load reads a YAML config file and applies defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.ApplyDefaults()
	return &c, nil
}

// FromEnv loads .env from the working directory if present, then the YAML
// file named by TODO_CONFIG (or explicit path when set), then applies the
// TODO_* environment overrides.
func FromEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

// SlogLevel maps Log.Level to a slog level; unknown values are warn.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
