// Package config загружает настройки клиента из ~/.votekeeper/config.toml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/iudanet/votekeeper/internal/client/api"
	"github.com/iudanet/votekeeper/internal/models"
)

const (
	dirName  = ".votekeeper"
	fileName = "config.toml"
	dbName   = "cache.db"
)

// Duration time.Duration в TOML в виде строки ("1h", "15s")
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// Config represents the client configuration
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
	Sync   SyncConfig   `toml:"sync"`
}

// ServerConfig секция [server]
type ServerConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// CacheConfig секция [cache]
type CacheConfig struct {
	DBPath     string   `toml:"db_path"`
	Passphrase string   `toml:"passphrase"`
	DefaultTTL Duration `toml:"default_ttl"`
}

// SyncConfig секция [sync]
type SyncConfig struct {
	ProbeInterval Duration `toml:"probe_interval"`
	MaxAttempts   int      `toml:"max_attempts"`
}

// LogConfig секция [log]
type LogConfig struct {
	Level string `toml:"level"`
}

// Dir возвращает ~/.votekeeper
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath возвращает путь к файлу конфигурации по умолчанию
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{URL: api.DefaultBaseURL},
		Cache:  CacheConfig{DefaultTTL: Duration{models.DefaultCacheTTL}},
		Sync: SyncConfig{
			MaxAttempts:   10,
			ProbeInterval: Duration{15 * time.Second},
		},
		Log: LogConfig{Level: "info"},
	}
	if dir, err := Dir(); err == nil {
		cfg.Cache.DBPath = filepath.Join(dir, dbName)
	}
	return cfg
}

// Load reads the config file over the defaults.
// If the file does not exist, it returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config back to disk as TOML
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	return nil
}

// Validate проверяет значения
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server.url must be an http(s) URL, got %q", c.Server.URL)
	}
	if c.Cache.DBPath == "" {
		return fmt.Errorf("cache.db_path cannot be empty")
	}
	if c.Cache.DefaultTTL.Duration <= 0 {
		return fmt.Errorf("cache.default_ttl must be positive")
	}
	if c.Sync.MaxAttempts < 0 {
		return fmt.Errorf("sync.max_attempts cannot be negative")
	}
	if c.Sync.ProbeInterval.Duration <= 0 {
		return fmt.Errorf("sync.probe_interval must be positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Set sets a config field using dot notation (e.g. "server.url")
func (c *Config) Set(key, value string) error {
	section, field, ok := strings.Cut(key, ".")
	if !ok {
		return fmt.Errorf("key must use dot notation: section.field (e.g. server.url)")
	}

	switch section {
	case "server":
		switch field {
		case "url":
			c.Server.URL = value
		case "token":
			c.Server.Token = value
		default:
			return fmt.Errorf("unknown field %q in section [server]", field)
		}
	case "cache":
		switch field {
		case "db_path":
			c.Cache.DBPath = value
		case "passphrase":
			c.Cache.Passphrase = value
		case "default_ttl":
			if err := c.Cache.DefaultTTL.UnmarshalText([]byte(value)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown field %q in section [cache]", field)
		}
	case "sync":
		switch field {
		case "max_attempts":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("sync.max_attempts must be an integer: %w", err)
			}
			c.Sync.MaxAttempts = n
		case "probe_interval":
			if err := c.Sync.ProbeInterval.UnmarshalText([]byte(value)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown field %q in section [sync]", field)
		}
	case "log":
		switch field {
		case "level":
			c.Log.Level = value
		default:
			return fmt.Errorf("unknown field %q in section [log]", field)
		}
	default:
		return fmt.Errorf("unknown config section %q (valid: server, cache, sync, log)", section)
	}
	return c.Validate()
}

// Redacted возвращает копию без секретов для вывода
func (c *Config) Redacted() *Config {
	out := *c
	if out.Server.Token != "" {
		out.Server.Token = "********"
	}
	if out.Cache.Passphrase != "" {
		out.Cache.Passphrase = "********"
	}
	return &out
}

// ParseLevel переводит уровень логирования из конфигурации в slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", level)
}
