// Package config loads shopcart settings from a YAML file with SHOPCART_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/nikolayk812/shopcart/internal/catalog"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	envPrefix = "SHOPCART_"

	profileIDKey = "storage.profile_id"
)

type Config struct {
	Catalog CatalogConfig `koanf:"catalog"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
}

type CatalogConfig struct {
	Endpoint string `koanf:"endpoint"`
}

type StorageConfig struct {
	// Driver is one of sqlite, postgres or memory.
	Driver string `koanf:"driver"`
	// Path of the sqlite database file.
	Path string `koanf:"path"`
	// PostgresDSN is used by the postgres driver.
	PostgresDSN string `koanf:"postgres_dsn"`
	// ProfileID scopes the cart in shared postgres storage.
	ProfileID string `koanf:"profile_id"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	// File receives logs while the interactive UI owns the terminal.
	File string `koanf:"file"`
}

// Dir is where shopcart keeps its config, database and logs by default.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "shopcart")
	}
	return ".shopcart"
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() Config {
	return Config{
		Catalog: CatalogConfig{Endpoint: catalog.DefaultEndpoint},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(Dir(), "shopcart.db"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(Dir(), "logs", "shopcart.log"),
		},
	}
}

// Load layers the defaults, the file at path and SHOPCART_* environment variables,
// e.g. SHOPCART_STORAGE_POSTGRES_DSN for storage.postgres_dsn. A missing file is not an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	// 1) defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	// 2) file
	if err := loadFile(k, path); err != nil {
		return Config{}, err
	}

	// 3) environment variables, the first underscore after the prefix separates the section
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file[%s]: %w", path, err)
	}

	return nil
}

// envKey maps SHOPCART_STORAGE_POSTGRES_DSN to storage.postgres_dsn.
// Variables without a section are ignored.
func envKey(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))

	section, field, ok := strings.Cut(key, "_")
	if !ok || section == "" || field == "" {
		return "", nil
	}

	return section + "." + field, strings.TrimSpace(value)
}

func (c Config) Validate() error {
	if c.Catalog.Endpoint == "" {
		return fmt.Errorf("catalog.endpoint required")
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path required for sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn required for postgres driver")
		}
		if c.Storage.ProfileID != "" {
			if _, err := uuid.Parse(c.Storage.ProfileID); err != nil {
				return fmt.Errorf("storage.profile_id is not a uuid: %w", err)
			}
		}
	case DriverMemory:
	default:
		return fmt.Errorf("storage.driver[%s] is not supported", c.Storage.Driver)
	}

	return nil
}

// EnsureProfileID returns the configured profile id, generating one and
// writing it to the file at path when none is set.
func EnsureProfileID(cfg *Config, path string) (uuid.UUID, error) {
	if cfg.Storage.ProfileID != "" {
		id, err := uuid.Parse(cfg.Storage.ProfileID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("uuid.Parse: %w", err)
		}
		return id, nil
	}

	id := uuid.New()

	if err := saveProfileID(path, id); err != nil {
		return uuid.Nil, err
	}

	cfg.Storage.ProfileID = id.String()

	return id, nil
}

// saveProfileID sets storage.profile_id in the file at path and leaves every
// other key as the file had it. Defaults and environment values are not written.
func saveProfileID(path string, id uuid.UUID) error {
	k := koanf.New(".")

	if err := loadFile(k, path); err != nil {
		return err
	}

	if err := k.Set(profileIDKey, id.String()); err != nil {
		return fmt.Errorf("k.Set[%s]: %w", profileIDKey, err)
	}

	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("k.Marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	return nil
}
