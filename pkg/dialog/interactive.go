package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/paths"
	"github.com/pterm/pterm"
)

// Prompt reads one line of input with an optional default
type Prompt func(label, defaultValue string) (string, error)

// Interactive asks for paths on the terminal
type Interactive struct {
	prompt Prompt
}

// NewInteractive prompts with pterm's interactive text input
func NewInteractive() *Interactive {
	return &Interactive{prompt: ptermPrompt}
}

// NewInteractiveWithPrompt uses a custom prompt
func NewInteractiveWithPrompt(p Prompt) *Interactive {
	return &Interactive{prompt: p}
}

func (i *Interactive) Open(ctx context.Context, filters []Filter) (string, bool, error) {
	label := "File to open"
	if len(filters) > 0 {
		var exts []string
		for _, f := range filters {
			for _, e := range f.Extensions {
				exts = append(exts, "."+strings.TrimPrefix(e, "."))
			}
		}
		if len(exts) > 0 {
			label = fmt.Sprintf("File to open (%s)", strings.Join(exts, ", "))
		}
	}
	return i.ask(ctx, label, "")
}

func (i *Interactive) Save(ctx context.Context, defaultPath string) (string, bool, error) {
	return i.ask(ctx, "Save as", defaultPath)
}

func (i *Interactive) ask(ctx context.Context, label, def string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	answer, err := i.prompt(label, def)
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrDialog, "prompt failed")
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false, nil
	}
	return paths.ExpandHome(answer), true, nil
}

func ptermPrompt(label, def string) (string, error) {
	input := pterm.DefaultInteractiveTextInput
	if def != "" {
		input = *input.WithDefaultValue(def)
	}
	return input.Show(label)
}
