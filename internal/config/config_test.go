package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.SessionRefresh)
	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.APIBase())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "helpdesk.yaml")
	require.NoError(t, os.WriteFile(file, []byte("WEB_PORT: \"4000\"\nUPSTREAM_API_URL: http://files.example/\n"), 0o600))

	t.Setenv("UPSTREAM_API_URL", "http://env.example/")

	cfg, err := LoadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "http://env.example", cfg.UpstreamURL)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "memcached")
	_, err := LoadFile("")
	assert.ErrorContains(t, err, "SESSION_STORE")
}

func TestLoadRequiresSecretOutsideDev(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	_, err := LoadFile("")
	assert.ErrorContains(t, err, "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "s3cret")
	_, err = LoadFile("")
	assert.NoError(t, err)
}
