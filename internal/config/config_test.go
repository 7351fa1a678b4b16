package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  endpoint: http://localhost:8080/products
storage:
  driver: memory
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/products", cfg.Catalog.Endpoint)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, Default().Log.File, cfg.Log.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0o600))

	t.Setenv("SHOPCART_STORAGE_DRIVER", "postgres")
	t.Setenv("SHOPCART_STORAGE_POSTGRES_DSN", "postgres://localhost/shop")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/shop", cfg.Storage.PostgresDSN)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: [\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError string
	}{
		{
			name:   "defaults: ok",
			mutate: func(*Config) {},
		},
		{
			name:      "empty endpoint: error",
			mutate:    func(c *Config) { c.Catalog.Endpoint = "" },
			wantError: "catalog.endpoint required",
		},
		{
			name:      "unknown driver: error",
			mutate:    func(c *Config) { c.Storage.Driver = "redis" },
			wantError: "storage.driver[redis] is not supported",
		},
		{
			name:      "sqlite without path: error",
			mutate:    func(c *Config) { c.Storage.Path = "" },
			wantError: "storage.path required for sqlite driver",
		},
		{
			name:      "postgres without dsn: error",
			mutate:    func(c *Config) { c.Storage.Driver = DriverPostgres },
			wantError: "storage.postgres_dsn required for postgres driver",
		},
		{
			name: "postgres with bad profile: error",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverPostgres
				c.Storage.PostgresDSN = "postgres://localhost/shop"
				c.Storage.ProfileID = "not-a-uuid"
			},
			wantError: "storage.profile_id is not a uuid: invalid UUID length: 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEnsureProfileID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()

	id, err := EnsureProfileID(&cfg, path)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id.String(), cfg.Storage.ProfileID)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, id.String(), reloaded.Storage.ProfileID)
	assert.Equal(t, Default().Storage.Path, reloaded.Storage.Path)

	again, err := EnsureProfileID(&reloaded, path)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestEnsureProfileID_WritesOnlyProfileID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: postgres\nlog:\n  level: debug\n"), 0o600))

	t.Setenv("SHOPCART_STORAGE_POSTGRES_DSN", "postgres://u:s3cret@db/x")
	t.Setenv("SHOPCART_CATALOG_ENDPOINT", "http://env.example/products")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "postgres://u:s3cret@db/x", cfg.Storage.PostgresDSN)

	id, err := EnsureProfileID(&cfg, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	saved := string(data)

	assert.Contains(t, saved, id.String())
	assert.Contains(t, saved, "driver: postgres")
	assert.Contains(t, saved, "level: debug")
	assert.NotContains(t, saved, "s3cret")
	assert.NotContains(t, saved, "env.example")
	assert.NotContains(t, saved, "endpoint")
}

func TestLoad_EnvValuesAreTrimmed(t *testing.T) {
	t.Setenv("SHOPCART_LOG_LEVEL", "  warn ")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		wantKey string
	}{
		{name: "section and field", env: "SHOPCART_LOG_LEVEL", wantKey: "log.level"},
		{name: "field with underscore", env: "SHOPCART_STORAGE_POSTGRES_DSN", wantKey: "storage.postgres_dsn"},
		{name: "no field: ignored", env: "SHOPCART_STORAGE", wantKey: ""},
		{name: "trailing underscore: ignored", env: "SHOPCART_STORAGE_", wantKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, _ := envKey(tt.env, "x")
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
