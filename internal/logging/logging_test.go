package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"samm/internal/logging"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"loud":    zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "samm.log")

	log, closer, err := logging.New(logging.Options{Level: "info", File: path})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("game", "sadx").Msg("loader installed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"game":"sadx"`)
	assert.Contains(t, string(data), `"message":"loader installed"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_VerboseConsole(t *testing.T) {
	var buf bytes.Buffer

	log, closer, err := logging.New(logging.Options{Level: "debug", Verbose: true, Console: &buf})
	require.NoError(t, err)
	defer closer.Close()

	log.Debug().Msg("probing game directory")
	assert.Contains(t, buf.String(), "probing game directory")
}

func TestNew_Quiet(t *testing.T) {
	log, closer, err := logging.New(logging.Options{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
