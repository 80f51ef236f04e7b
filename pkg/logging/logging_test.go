package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv(EnvStateDir, tempDir)

			SetupLogger(Options{Verbosity: tt.verbosity, Console: io.Discard})

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, LogFileName)
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
}

func TestSetupLoggerExplicitFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "run.log")
	var console bytes.Buffer

	SetupLogger(Options{Verbosity: 1, LogFile: logPath, Console: &console, NoColor: true})
	logger := GetLogger("test")
	logger.Info().Msg("hello from test")

	assert.Contains(t, console.String(), "hello from test")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)

	// Reconfiguring moves entries to the new file
	second := filepath.Join(t.TempDir(), "second.log")
	SetupLogger(Options{LogFile: second, Console: io.Discard})
	logger = GetLogger("test")
	logger.Warn().Msg("second")
	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "second")
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("state dir override wins", func(t *testing.T) {
		t.Setenv(EnvStateDir, "/custom/mjstudio")
		t.Setenv("XDG_STATE_HOME", "/ignored")
		assert.Equal(t, filepath.Join("/custom/mjstudio", "mjstudio.log"), getLogFilePath())
	})

	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv(EnvStateDir, "")
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		got := filepath.ToSlash(getLogFilePath())
		assert.True(t, strings.HasSuffix(got, "/custom/state/mjstudio/mjstudio.log"), got)
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv(EnvStateDir, "")
		t.Setenv("XDG_STATE_HOME", "")
		got := filepath.ToSlash(getLogFilePath())
		assert.Contains(t, got, ".local/state/mjstudio/mjstudio.log")
	})
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "compile")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
