package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, zerolog.InfoLevel)

	log.Debug().Msg("hidden")
	log.Info().Str("kind", "comic").Msg("hydrated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hydrated", entry["message"])
	assert.Equal(t, "comic", entry["kind"])
	assert.NotContains(t, entry, "caller")
}

func TestInit_File(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	prevLogger := zlog.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		zlog.Logger = prevLogger
	})

	path := filepath.Join(t.TempDir(), "marvel.log")
	closer, err := Init(Config{Output: "file", Level: "debug", File: path})
	require.NoError(t, err)

	zlog.Debug().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
	assert.Contains(t, string(data), `"caller":"logger/logger_test.go`)
}

func TestInit_UnknownOutput(t *testing.T) {
	_, err := Init(Config{Output: "syslog"})
	assert.Error(t, err)
}
