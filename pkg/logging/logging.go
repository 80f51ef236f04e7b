package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvStateDir overrides the directory holding the log file
const EnvStateDir = "MJSTUDIO_STATE_DIR"

// LogFileName is the log file kept in the state directory
const LogFileName = "mjstudio.log"

// Options configures SetupLogger
type Options struct {
	// Verbosity is the -v count: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int
	// LogFile receives a copy of every entry. Empty uses the state
	// directory from the environment.
	LogFile string
	// Console defaults to stderr
	Console io.Writer
	NoColor bool
}

var (
	fileMu   sync.Mutex
	openFile *os.File
)

// SetupLogger installs the global logger. Console output is human
// readable; the log file gets the same entries. A previous log file opened
// by SetupLogger is closed.
func SetupLogger(opts Options) {
	zerolog.SetGlobalLevel(levelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor || os.Getenv("NO_COLOR") != "",
	}}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = getLogFilePath()
	}
	handle, err := swapLogFile(logFile)
	if err == nil {
		writers = append(writers, handle)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath returns the path to the log file.
// Precedence: MJSTUDIO_STATE_DIR, XDG_STATE_HOME/mjstudio, ~/.local/state/mjstudio.
func getLogFilePath() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return filepath.Join(dir, LogFileName)
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return LogFileName
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "mjstudio", LogFileName)
}

// swapLogFile opens logPath for appending and closes the file opened by
// the previous call
func swapLogFile(logPath string) (*os.File, error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	if openFile != nil {
		_ = openFile.Close()
		openFile = nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	openFile = file
	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
