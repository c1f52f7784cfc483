package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abubakkersiddiqq/taskflow/internal/config"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DatabasePath)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Greater(t, cfg.TokenTTLHours, 0)
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("listen_addr: \":8080\"\ndatabase_path: /tmp/test.db\njwt_secret: sekrit\ntoken_ttl_hours: 2\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, "sekrit", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.TokenTTLHours)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TASKFLOW_JWT_SECRET", "from-env")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}
