package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("APP_PORT", "")
	t.Setenv("MONGO_DB", "")

	cfg, err := Load(writeConfigFile(t, "app:\n  env: test\n"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "marketplace", cfg.Mongo.Database)
	assert.Equal(t, "users", cfg.Mongo.UserCollection)
	assert.Equal(t, "products", cfg.Mongo.ProductCollection)
	assert.Equal(t, 15, cfg.Mongo.ConnectTimeoutSec)
	assert.Equal(t, 5, cfg.Redis.DialTimeoutSec)
	assert.Equal(t, 100, cfg.Security.RateLimitRequests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "5")
	t.Setenv("MONGO_DB", "marketplace_test")
	t.Setenv("REDIS_ADDR", "cache.internal:6379")

	yaml := "app:\n  env: development\n  port: 5000\nmongodb:\n  uri: mongodb://localhost:27017\n"
	cfg, err := Load(writeConfigFile(t, yaml))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
	assert.Equal(t, "marketplace_test", cfg.Mongo.Database)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("MONGO_URI", "")

	_, err := Load(writeConfigFile(t, "mongodb:\n  uri: mongodb://localhost:27017\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("MONGO_URI", "")

	_, err := Load(writeConfigFile(t, "app:\n  env: test\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}
