package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFrom_ReadsDotenv(t *testing.T) {
	path := writeEnv(t, "JWT_SECRET=abc\nPORT=9090\nREDIS_ADDR=localhost:6379\nCACHE_TTL_SECONDS=30\n")

	config, err := LoadConfigFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "abc", config.Pass.Secret)
	assert.Equal(t, "9090", config.App.Port)
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, 30*time.Second, config.Redis.CacheTTL)
}

func TestLoadConfigFrom_Defaults(t *testing.T) {
	path := writeEnv(t, "JWT_SECRET=abc\n")

	config, err := LoadConfigFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "movie-booking", config.App.Name)
	assert.Equal(t, 12, config.App.BcryptCost)
	assert.Equal(t, 24*time.Hour, config.Session.Expiry())
	assert.Equal(t, 72, config.Pass.ExpiryHours)
	assert.Equal(t, 20, config.RateLimit.PerMinute)
}

func TestLoadConfigFrom_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	config, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "from-env", config.Pass.Secret)
}

func TestLoadConfigFrom_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeEnv(t, "PORT=8081\n")

	_, err := LoadConfigFrom(path)

	assert.EqualError(t, err, "JWT_SECRET is required")
}
