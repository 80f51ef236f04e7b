// Package compiler turns MJML into HTML by running the mjml command line
// compiler. Markup is inspected first so obviously broken documents can be
// rejected, or flagged, before a process is started.
package compiler

import (
	"context"
	"strings"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/async"
	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/arthur-debert/mjstudio/pkg/mjml"
	"github.com/arthur-debert/mjstudio/pkg/runner"
	"github.com/rs/zerolog"
)

// Compiler renders MJML markup to HTML
type Compiler interface {
	Compile(ctx context.Context, markup string) (string, error)
}

// CompileAsync runs c.Compile in the background
func CompileAsync(ctx context.Context, c Compiler, markup string) *async.Future[string] {
	return async.Go(ctx, func(ctx context.Context) (string, error) {
		return c.Compile(ctx, markup)
	})
}

// Options configure the CLI compiler
type Options struct {
	Binary          string
	Args            []string
	ValidationLevel mjml.ValidationLevel
	Minify          bool
	Timeout         time.Duration
}

// OptionsFromConfig maps the [compiler] config section
func OptionsFromConfig(cfg config.CompilerConfig) Options {
	return Options{
		Binary:          cfg.Binary,
		Args:            append([]string(nil), cfg.Args...),
		ValidationLevel: mjml.ParseValidationLevel(cfg.ValidationLevel),
		Minify:          cfg.Minify,
		Timeout:         cfg.Timeout,
	}
}

// CLI compiles by piping markup through the mjml binary
type CLI struct {
	opts   Options
	runner runner.Runner
	logger zerolog.Logger
}

// NewCLI creates a compiler using r to start the mjml process
func NewCLI(opts Options, r runner.Runner) *CLI {
	if opts.Binary == "" {
		opts.Binary = "mjml"
	}
	if len(opts.Args) == 0 {
		opts.Args = []string{"--stdin", "--stdout"}
	}
	if opts.ValidationLevel == "" {
		opts.ValidationLevel = mjml.ValidationSoft
	}
	return &CLI{
		opts:   opts,
		runner: r,
		logger: logging.GetLogger("compiler"),
	}
}

// Compile validates markup at the configured level and renders it
func (c *CLI) Compile(ctx context.Context, markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", errors.New(errors.ErrCompile, "empty markup")
	}

	if err := c.validate(markup); err != nil {
		return "", err
	}

	res, err := c.runner.Run(ctx, runner.Command{
		Name:    c.opts.Binary,
		Args:    c.args(),
		Stdin:   []byte(markup),
		Timeout: c.opts.Timeout,
	})
	if err != nil {
		wrapped := errors.Wrap(err, errors.ErrCompile, "mjml compilation failed")
		if stderr := strings.TrimSpace(string(res.Stderr)); stderr != "" {
			wrapped = wrapped.WithDetail("stderr", stderr)
		}
		return "", wrapped
	}

	html := string(res.Stdout)
	if strings.TrimSpace(html) == "" {
		return "", errors.New(errors.ErrCompile, "mjml produced no output")
	}

	if len(res.Stderr) > 0 {
		c.logger.Warn().Str("output", strings.TrimSpace(string(res.Stderr))).Msg("mjml reported warnings")
	}
	c.logger.Debug().Int("mjmlLen", len(markup)).Int("htmlLen", len(html)).Msg("Compiled template")
	return html, nil
}

func (c *CLI) args() []string {
	args := append([]string(nil), c.opts.Args...)
	args = append(args, "--config.validationLevel", string(c.opts.ValidationLevel))
	if c.opts.Minify {
		args = append(args, "--config.minify", "true")
	}
	return args
}

func (c *CLI) validate(markup string) error {
	if c.opts.ValidationLevel == mjml.ValidationSkip {
		return nil
	}

	info, err := mjml.Inspect(markup)
	if err != nil {
		if c.opts.ValidationLevel == mjml.ValidationStrict {
			return errors.Wrap(err, errors.ErrCompile, "markup is not well formed")
		}
		c.logger.Warn().Err(err).Msg("Markup is not well formed")
		return nil
	}
	if info.Valid() {
		return nil
	}

	messages := make([]string, len(info.Issues))
	for i, issue := range info.Issues {
		messages[i] = issue.String()
	}

	if c.opts.ValidationLevel == mjml.ValidationStrict {
		return errors.Newf(errors.ErrCompile, "markup has %d validation issue(s)", len(info.Issues)).
			WithDetail("issues", messages)
	}
	c.logger.Warn().Strs("issues", messages).Msg("Markup has validation issues")
	return nil
}
