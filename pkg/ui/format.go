package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are printed
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output
	FormatAuto Format = iota
	// FormatTerminal prints styled, colored output
	FormatTerminal
	// FormatText prints the same layout without styling
	FormatText
	// FormatJSON prints machine-readable JSON
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a --format flag value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// Resolve turns FormatAuto into a concrete format for w. Writers that are
// not files are treated as plain text.
func Resolve(f Format, w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}

// DetectFormat picks text output for pipes, NO_COLOR and terminals
// without color support
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(output).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
