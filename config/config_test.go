package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"grade-stats/app/calculator"
)

var envKeys = []string{
	"PORT", "ROUTE_PREFIX", "STORE_DRIVER", "MONGO_URI", "MONGO_DB", "MONGO_COLLECTION",
	"DATABASE_URL", "REDIS_ADDR", "CACHE_TTL", "QUERY_TIMEOUT", "MISSING_COMPONENT_POLICY",
	"JWT_SECRET", "LOG_LEVEL",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/grades", cfg.RoutePrefix)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "grades", cfg.Collection)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, calculator.PolicyZero, cfg.Policy)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/school?sslmode=disable")
	t.Setenv("QUERY_TIMEOUT", "250ms")
	t.Setenv("MISSING_COMPONENT_POLICY", "renormalize")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.QueryTimeout)
	assert.Equal(t, calculator.PolicyRenormalize, cfg.Policy)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"port not a number", map[string]string{"PORT": "http"}, "PORT"},
		{"port out of range", map[string]string{"PORT": "70000"}, "out of range"},
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"postgres without dsn", map[string]string{"STORE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"bad timeout", map[string]string{"QUERY_TIMEOUT": "soon"}, "QUERY_TIMEOUT"},
		{"negative timeout", map[string]string{"QUERY_TIMEOUT": "-1s"}, "QUERY_TIMEOUT must be positive"},
		{"unknown policy", map[string]string{"MISSING_COMPONENT_POLICY": "skip"}, "MISSING_COMPONENT_POLICY"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that exists, even when empty.
	os.Unsetenv("MONGO_DB")

	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGO_DB=district\n"), 0o600))
	require.NoError(t, LoadEnv(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "district", cfg.MongoDB)
}
