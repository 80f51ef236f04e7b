// Package runner executes external programs (the mjml compiler, the
// headless browser) with captured output and a timeout.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds commands that do not set one
const DefaultTimeout = 5 * time.Minute

// Command describes one program invocation
type Command struct {
	Name    string
	Args    []string
	Stdin   []byte
	Dir     string
	Env     map[string]string
	Timeout time.Duration
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result holds the captured output of a finished command
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Runner runs commands
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands as child processes
type ExecRunner struct {
	logger zerolog.Logger
}

// New creates an ExecRunner
func New() *ExecRunner {
	return &ExecRunner{logger: logging.GetLogger("runner")}
}

// Run executes the command. A non-zero exit, a missing binary or a
// timeout all return an error carrying the captured stderr.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	if c.Name == "" {
		return Result{}, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)

	if c.Dir != "" {
		if _, err := os.Stat(c.Dir); os.IsNotExist(err) {
			return Result{}, errors.Newf(errors.ErrInvalidInput,
				"working directory does not exist: %s", c.Dir)
		}
		cmd.Dir = c.Dir
	}

	cmd.Env = os.Environ()
	for key, value := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	if c.Stdin != nil {
		cmd.Stdin = bytes.NewReader(c.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug().
		Str("command", c.Name).
		Strs("args", c.Args).
		Int("stdinLen", len(c.Stdin)).
		Msg("Executing command")

	start := time.Now()
	err := cmd.Run()
	result := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if stderr.Len() > 0 {
		r.logger.Debug().
			Str("output", stderr.String()).
			Msg("Command stderr")
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s: %w", timeout, ctx.Err())
		}
		r.logger.Error().
			Err(err).
			Str("command", c.Name).
			Strs("args", c.Args).
			Str("stderr", stderr.String()).
			Msg("Command execution failed")

		return result, errors.Wrapf(err, errors.ErrInternal,
			"failed to execute command: %s", c.Name).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}

	r.logger.Debug().
		Str("command", c.Name).
		Dur("duration", time.Since(start)).
		Msg("Command executed successfully")

	return result, nil
}
