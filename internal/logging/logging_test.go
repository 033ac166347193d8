package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		"TRACE":   zerolog.TraceLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swgapi.log")
	l, closer := New(&Config{Level: "debug", Format: "json", Output: path})
	l.Debug().Str("endpoint", "Version").Msg("dispatch")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"endpoint":"Version"`)
	assert.Contains(t, string(b), `"message":"dispatch"`)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swgapi.log")
	l, closer := New(&Config{Level: "warn", Format: "json", Output: path})
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hidden")
	assert.Contains(t, string(b), "shown")
}

func TestUnopenableFileDiscards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "swgapi.log")
	out, closer := openOutput(path)
	assert.Equal(t, io.Discard, out)
	require.NoError(t, closer.Close())

	l, _ := New(&Config{Level: "debug", Format: "json", Output: path})
	l.Debug().Msg("dropped")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigureSetsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.log")
	closer := Configure(&Config{Level: "info", Format: "json", Output: path})
	t.Cleanup(func() { SetDefault(zerolog.Nop()) })

	L().Info().Msg("via default")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "via default")
}
