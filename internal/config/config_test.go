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
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Connection.Host)
	assert.Equal(t, 44443, cfg.Connection.Port)
	assert.True(t, cfg.Connection.Insecure)
	assert.Equal(t, 10*time.Second, cfg.Connection.Timeout)
	assert.Empty(t, cfg.Connection.Token)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SWGAPI_HOST", "core3.example")
	t.Setenv("SWGAPI_PORT", "8443")
	t.Setenv("SWGAPI_TOKEN", "from-env")
	t.Setenv("SWGAPI_INSECURE", "false")
	t.Setenv("SWGAPI_CA_FILE", "/etc/core3/ca.pem")
	t.Setenv("SWGAPI_TIMEOUT", "3s")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "core3.example", cfg.Connection.Host)
	assert.Equal(t, 8443, cfg.Connection.Port)
	assert.Equal(t, "from-env", cfg.Connection.Token)
	assert.False(t, cfg.Connection.Insecure)
	assert.Equal(t, "/etc/core3/ca.pem", cfg.Connection.CAFile)
	assert.Equal(t, 3*time.Second, cfg.Connection.Timeout)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swgapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: galaxy.local\nport: 44444\ntoken: from-file\n"), 0o600))

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "galaxy.local", cfg.Connection.Host)
	assert.Equal(t, 44444, cfg.Connection.Port)
	assert.Equal(t, "from-file", cfg.Connection.Token)
	assert.Equal(t, path, cfg.File)
}

func TestEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swgapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: from-file\n"), 0o600))
	t.Setenv("SWGAPI_TOKEN", "from-env")

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Connection.Token)
}

func TestReadFileMissingExplicit(t *testing.T) {
	assert.Error(t, ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestLoadRejectsBadPort(t *testing.T) {
	v := New()
	v.Set(KeyPort, 0)
	_, err := Load(v)
	assert.Error(t, err)
}

func TestVerboseImpliesDebug(t *testing.T) {
	v := New()
	v.Set(KeyVerbose, true)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}
