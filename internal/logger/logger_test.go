package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logpkg "github.com/maxviazov/game-tracker-service/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "valid production environment",
			config: &logpkg.LoggerConfig{
				ServiceName:    "test-service",
				ServiceVersion: "1.0.0",
				Env:            "prod",
				Level:          "info",
				TimeField:      "timestamp",
				TimeFormat:     "unix",
				Fields:         map[string]interface{}{"key": "value"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:        "invalid configuration - wrong env",
			config:      &logpkg.LoggerConfig{ServiceName: "bad-service", Env: "wrong-env", Level: "debug"},
			expectError: true,
		},
		{
			name:        "invalid log level",
			config:      &logpkg.LoggerConfig{Env: "prod", Level: "invalid-level"},
			expectError: true,
		},
		{
			name:        "invalid time format",
			config:      &logpkg.LoggerConfig{Env: "prod", Level: "info", TimeFormat: "iso"},
			expectError: true,
		},
		{
			name: "valid staging environment",
			config: &logpkg.LoggerConfig{
				ServiceName: "test-service",
				Env:         "staging",
				Level:       "warn",
				TimeFormat:  "rfc3339",
				Stacktrace:  true,
			},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "valid development environment without debug",
			config:    &logpkg.LoggerConfig{Env: "dev", Level: "info"},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "test environment with error level",
			config:    &logpkg.LoggerConfig{Env: "test", Level: "error", WithCaller: true},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := logpkg.New(test.config)
			if test.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestNew_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracker.log")
	l, err := logpkg.New(&logpkg.LoggerConfig{
		Env:   "prod",
		Level: "info",
		File:  logpkg.FileConfig{Path: path, MaxBackups: 1},
	})
	require.NoError(t, err)

	l.Info().Str("probe", "file").Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"probe":"file"`)
	assert.Contains(t, string(data), `"service":"game-tracker-service"`)
}

func TestNew_InvalidFileSettings(t *testing.T) {
	_, err := logpkg.New(&logpkg.LoggerConfig{
		Env:  "prod",
		File: logpkg.FileConfig{Path: filepath.Join(t.TempDir(), "x.log"), MaxBackups: -1},
	})
	assert.Error(t, err)
}
