// Package config loads the temptrack configuration from an optional YAML
// file and TEMPTRACK_* environment variables. The environment wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"temptrack/internal/cycle"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverJSONFile = "jsonfile"
	DriverMemory   = "memory"
)

// Config is the complete runtime configuration.
type Config struct {
	Addr          string        `yaml:"addr"`
	WebDir        string        `yaml:"web_dir"`
	Storage       StorageConfig `yaml:"storage"`
	RetentionDays int           `yaml:"retention_days"`
	Backup        BackupConfig  `yaml:"backup"`
	Cycle         cycle.Params  `yaml:"cycle"`
}

// StorageConfig selects the store. DSN is a file path for sqlite and
// jsonfile and a connection string for postgres. An empty DSN falls back
// to temptrack.db, temptrack.json or DATABASE_URL respectively.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// BackupConfig points at the S3-compatible bucket used by backup.
// Credentials come from the standard AWS environment when AccessKeyID is
// empty.
type BackupConfig struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:          ":8080",
		WebDir:        "web",
		Storage:       StorageConfig{Driver: DriverSQLite},
		RetentionDays: 730,
		Backup:        BackupConfig{Prefix: "backups"},
		Cycle:         cycle.DefaultParams(),
	}
}

// Overrides are command-line values. They take precedence over the file
// and the environment, and are applied before the driver's default DSN is
// chosen.
type Overrides struct {
	Driver string
	DSN    string
}

// Load reads path (skipped when empty), applies the environment and o, and
// validates the result.
func Load(path string, o Overrides) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if o.Driver != "" && o.Driver != cfg.Storage.Driver {
		// a DSN from the file or environment belongs to the replaced driver
		cfg.Storage.Driver = o.Driver
		cfg.Storage.DSN = ""
	}
	if o.DSN != "" {
		cfg.Storage.DSN = o.DSN
	}
	cfg.resolveDSN()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Addr = env("TEMPTRACK_ADDR", c.Addr)
	c.WebDir = env("TEMPTRACK_WEB_DIR", c.WebDir)
	c.Storage.Driver = env("TEMPTRACK_STORAGE", c.Storage.Driver)
	c.Storage.DSN = env("TEMPTRACK_DSN", c.Storage.DSN)

	if v := os.Getenv("TEMPTRACK_RETENTION_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TEMPTRACK_RETENTION_DAYS: %w", err)
		}
		c.RetentionDays = n
	}

	c.Backup.Bucket = env("TEMPTRACK_BACKUP_BUCKET", c.Backup.Bucket)
	c.Backup.Prefix = env("TEMPTRACK_BACKUP_PREFIX", c.Backup.Prefix)
	c.Backup.Region = env("TEMPTRACK_BACKUP_REGION", c.Backup.Region)
	c.Backup.Endpoint = env("TEMPTRACK_BACKUP_ENDPOINT", c.Backup.Endpoint)
	if v := os.Getenv("TEMPTRACK_BACKUP_PATH_STYLE"); v != "" {
		c.Backup.PathStyle = strings.EqualFold(v, "true")
	}
	return nil
}

// resolveDSN fills an empty DSN with the final driver's default.
func (c *Config) resolveDSN() {
	if c.Storage.DSN != "" {
		return
	}
	switch c.Storage.Driver {
	case DriverPostgres:
		c.Storage.DSN = os.Getenv("DATABASE_URL")
	case DriverSQLite:
		c.Storage.DSN = "temptrack.db"
	case DriverJSONFile:
		c.Storage.DSN = "temptrack.json"
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverJSONFile:
		if c.Storage.DSN == "" {
			errs = append(errs, fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.RetentionDays < 1 {
		errs = append(errs, fmt.Errorf("retention_days must be >= 1, got %d", c.RetentionDays))
	}
	if err := c.Cycle.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cycle: %w", err))
	}
	return errors.Join(errs...)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
