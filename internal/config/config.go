// Package config loads registry settings from TOML, YAML or JSON files and
// applies MODELREGISTRY_* environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MODELREGISTRY_"

// Config is the full registry configuration.
type Config struct {
	Storage Storage `json:"storage" yaml:"storage" toml:"storage"`
	Log     Log     `json:"log" yaml:"log" toml:"log"`
	Blob    Blob    `json:"blob" yaml:"blob" toml:"blob"`
	Search  Search  `json:"search" yaml:"search" toml:"search"`
}

// Storage selects the relational backend and its pool settings.
type Storage struct {
	Driver          string   `json:"driver" yaml:"driver" toml:"driver"`
	SQLitePath      string   `json:"sqlite_path" yaml:"sqlite_path" toml:"sqlite_path"`
	PostgresDSN     string   `json:"postgres_dsn" yaml:"postgres_dsn" toml:"postgres_dsn"`
	MaxOpenConns    int      `json:"max_open_conns" yaml:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns    int      `json:"max_idle_conns" yaml:"max_idle_conns" toml:"max_idle_conns"`
	ConnMaxLifetime Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime" toml:"conn_max_lifetime"`
}

// Log configures the zerolog logger.
type Log struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"`
}

// Blob configures where catalog exports are written.
type Blob struct {
	Driver      string `json:"driver" yaml:"driver" toml:"driver"`
	FSRoot      string `json:"fs_root" yaml:"fs_root" toml:"fs_root"`
	S3Bucket    string `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Region    string `json:"s3_region" yaml:"s3_region" toml:"s3_region"`
	S3Endpoint  string `json:"s3_endpoint" yaml:"s3_endpoint" toml:"s3_endpoint"`
	S3PathStyle bool   `json:"s3_path_style" yaml:"s3_path_style" toml:"s3_path_style"`
}

// Search holds query defaults.
type Search struct {
	DefaultLimit int `json:"default_limit" yaml:"default_limit" toml:"default_limit"`
}

// Duration is a time.Duration written as a Go duration string ("5m", "1h30m")
// in every supported file format.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Storage: Storage{
			Driver:          DriverSQLite,
			SQLitePath:      "modelregistry.db",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: Duration(30 * time.Minute),
		},
		Log:    Log{Level: "info", Format: "console"},
		Blob:   Blob{Driver: "fs", FSRoot: "./exports", S3Region: "us-east-1"},
		Search: Search{DefaultLimit: 20},
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	case ".json":
		err = json.Unmarshal(b, cfg)
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}

	str("STORAGE_DRIVER", &c.Storage.Driver)
	str("SQLITE_PATH", &c.Storage.SQLitePath)
	str("POSTGRES_DSN", &c.Storage.PostgresDSN)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("BLOB_DRIVER", &c.Blob.Driver)
	str("BLOB_FS_ROOT", &c.Blob.FSRoot)
	str("BLOB_S3_BUCKET", &c.Blob.S3Bucket)
	str("BLOB_S3_REGION", &c.Blob.S3Region)
	str("BLOB_S3_ENDPOINT", &c.Blob.S3Endpoint)
	if v, ok := lookup(EnvPrefix + "BLOB_S3_PATH_STYLE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sBLOB_S3_PATH_STYLE: %w", EnvPrefix, err)
		}
		c.Blob.S3PathStyle = b
	}
	if v, ok := lookup(EnvPrefix + "CONN_MAX_LIFETIME"); ok {
		if err := c.Storage.ConnMaxLifetime.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sCONN_MAX_LIFETIME: %w", EnvPrefix, err)
		}
	}
	if err := num("MAX_OPEN_CONNS", &c.Storage.MaxOpenConns); err != nil {
		return err
	}
	if err := num("MAX_IDLE_CONNS", &c.Storage.MaxIdleConns); err != nil {
		return err
	}
	return num("SEARCH_DEFAULT_LIMIT", &c.Search.DefaultLimit)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite driver"))
		}
	case DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of sqlite, postgres, memory", c.Storage.Driver))
	}
	if c.Storage.MaxOpenConns < 0 || c.Storage.MaxIdleConns < 0 {
		errs = append(errs, errors.New("storage connection limits must not be negative"))
	}
	if c.Storage.ConnMaxLifetime < 0 {
		errs = append(errs, errors.New("storage.conn_max_lifetime must not be negative"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is unknown", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not json or console", c.Log.Format))
	}
	switch strings.ToLower(c.Blob.Driver) {
	case "", "fs", "memory":
	case "s3":
		if c.Blob.S3Bucket == "" {
			errs = append(errs, errors.New("blob.s3_bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("blob.driver %q is not one of fs, s3, memory", c.Blob.Driver))
	}
	if c.Search.DefaultLimit < 0 {
		errs = append(errs, errors.New("search.default_limit must not be negative"))
	}
	return errors.Join(errs...)
}
