package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "LOG_LEVEL", "STORE_DRIVER", "DATABASE_URL", "DB_AUTO_MIGRATE",
		"MONGODB_URI", "MONGODB_DB_NAME", "AUTH_JWT_SECRET", "AUTH_JWT_ISSUER",
		"AUTH_SERVICE_URL", "AUTH_SERVICE_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://leafline@localhost/leafline")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Postgres.AutoMigrate)
	assert.Equal(t, "leafline", cfg.MongoDB.DBName)
	assert.Equal(t, 15*time.Second, cfg.Auth.ServiceTimeout)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_DRIVER=memory\nAUTH_SERVICE_URL=http://identity:9000\nAPP_PORT=9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://identity:9000", cfg.Auth.ServiceURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without dsn", env: map[string]string{"AUTH_JWT_SECRET": "x"}},
		{name: "mongodb without uri", env: map[string]string{"STORE_DRIVER": "mongodb", "AUTH_JWT_SECRET": "x"}},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "redis", "AUTH_JWT_SECRET": "x"}},
		{name: "no auth", env: map[string]string{"STORE_DRIVER": "memory"}},
		{name: "bad migrate flag", env: map[string]string{"STORE_DRIVER": "memory", "AUTH_JWT_SECRET": "x", "DB_AUTO_MIGRATE": "maybe"}},
		{name: "bad timeout", env: map[string]string{"STORE_DRIVER": "memory", "AUTH_JWT_SECRET": "x", "AUTH_SERVICE_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}
