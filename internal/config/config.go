package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Backup  BackupConfig  `yaml:"backup"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host" env:"EVENTEASE_HOST"`
	Port int    `yaml:"port" env:"EVENTEASE_PORT"`
}

// StoreConfig holds event store settings.
type StoreConfig struct {
	// Path is the JSON data file holding the full event collection.
	Path string `yaml:"path" env:"EVENTEASE_DATA_FILE"`
	// CapacityPolicy is "reject" or "clamp"; see event.CapacityPolicy.
	CapacityPolicy string `yaml:"capacity_policy" env:"EVENTEASE_CAPACITY_POLICY"`
}

// BackupConfig holds snapshot settings. A zero Interval disables the
// scheduler; backups can still be taken from the CLI.
type BackupConfig struct {
	Dir       string        `yaml:"dir" env:"EVENTEASE_BACKUP_DIR"`
	Retention int           `yaml:"retention" env:"EVENTEASE_BACKUP_RETENTION"`
	Interval  time.Duration `yaml:"interval" env:"EVENTEASE_BACKUP_INTERVAL"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"EVENTEASE_LOG_LEVEL"`
	Format string `yaml:"format" env:"EVENTEASE_LOG_FORMAT"`
}

// defaults applies sane defaults to zero-valued fields.
func (c *Config) defaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/events.json"
	}
	if c.Store.CapacityPolicy == "" {
		c.Store.CapacityPolicy = "reject"
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = "backups"
	}
	if c.Backup.Retention == 0 {
		c.Backup.Retention = 5
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// validate checks required fields and value constraints.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Store.CapacityPolicy {
	case "reject", "clamp":
	default:
		return fmt.Errorf("store.capacity_policy must be reject or clamp, got %q", c.Store.CapacityPolicy)
	}
	if c.Backup.Retention < 1 {
		return fmt.Errorf("backup.retention must be at least 1, got %d", c.Backup.Retention)
	}
	if c.Backup.Interval < 0 {
		return fmt.Errorf("backup.interval must be non-negative")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

// expandEnv replaces ${VAR} references in path fields with environment
// variable values.
func (c *Config) expandEnv() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
	c.Backup.Dir = os.ExpandEnv(c.Backup.Dir)
}

// applyEnv overrides file values with any EVENTEASE_* variables that are set.
func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads a YAML config file, applies EVENTEASE_* overrides and defaults,
// expands ${VAR} references in paths, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.defaults()
	cfg.expandEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
