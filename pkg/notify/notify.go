// Package notify surfaces short success and failure messages to the user.
package notify

import (
	"io"
	"os"

	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/pterm/pterm"
)

// Notifier receives user-facing messages
type Notifier interface {
	Notify(msg string)
	Error(msg string)
}

// Terminal prints notifications with pterm prefixes. Errors go to the
// error writer. Every message is also logged.
type Terminal struct {
	out   io.Writer
	errw  io.Writer
	quiet bool
}

// NewTerminal writes to stdout and stderr
func NewTerminal() *Terminal {
	return NewTerminalWithWriters(os.Stdout, os.Stderr)
}

// NewTerminalWithWriters writes notifications to out and errors to errw
func NewTerminalWithWriters(out, errw io.Writer) *Terminal {
	return &Terminal{out: out, errw: errw}
}

// Quiet suppresses success messages. Errors are still printed.
func (t *Terminal) Quiet(quiet bool) *Terminal {
	t.quiet = quiet
	return t
}

func (t *Terminal) Notify(msg string) {
	logger := logging.GetLogger("notify")
	logger.Info().Msg(msg)
	if t.quiet {
		return
	}
	pterm.Success.WithWriter(t.out).Println(msg)
}

func (t *Terminal) Error(msg string) {
	logger := logging.GetLogger("notify")
	logger.Error().Msg(msg)
	pterm.Error.WithWriter(t.errw).Println(msg)
}
