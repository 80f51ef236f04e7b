// Test Type: Unit Test
// Description: Tests for the mjml CLI compiler using a scripted runner

package compiler_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/compiler"
	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/mjml"
	"github.com/arthur-debert/mjstudio/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMarkup = `<mjml><mj-head><mj-title>Hi</mj-title></mj-head><mj-body><mj-section><mj-column><mj-text>Hello</mj-text></mj-column></mj-section></mj-body></mjml>`

type scriptedRunner struct {
	result runner.Result
	err    error
	calls  []runner.Command
}

func (r *scriptedRunner) Run(_ context.Context, c runner.Command) (runner.Result, error) {
	r.calls = append(r.calls, c)
	return r.result, r.err
}

func TestCompile_PipesMarkupThroughBinary(t *testing.T) {
	r := &scriptedRunner{result: runner.Result{Stdout: []byte("<html>ok</html>")}}
	c := compiler.NewCLI(compiler.Options{Binary: "/usr/bin/mjml", Timeout: time.Second}, r)

	html, err := c.Compile(context.Background(), validMarkup)

	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", html)
	require.Len(t, r.calls, 1)
	assert.Equal(t, "/usr/bin/mjml", r.calls[0].Name)
	assert.Equal(t, []string{"--stdin", "--stdout", "--config.validationLevel", "soft"}, r.calls[0].Args)
	assert.Equal(t, validMarkup, string(r.calls[0].Stdin))
	assert.Equal(t, time.Second, r.calls[0].Timeout)
}

func TestCompile_Minify(t *testing.T) {
	r := &scriptedRunner{result: runner.Result{Stdout: []byte("<html/>")}}
	c := compiler.NewCLI(compiler.Options{Minify: true, ValidationLevel: mjml.ValidationSkip}, r)

	_, err := c.Compile(context.Background(), validMarkup)

	require.NoError(t, err)
	assert.Contains(t, r.calls[0].Args, "--config.minify")
	assert.Contains(t, r.calls[0].Args, "skip")
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		level  mjml.ValidationLevel
		markup string
		runner *scriptedRunner
		calls  int
	}{
		{
			name:   "empty_markup",
			markup: "  ",
			runner: &scriptedRunner{},
		},
		{
			name:   "process_failure",
			markup: validMarkup,
			runner: &scriptedRunner{
				result: runner.Result{Stderr: []byte("Line 1 of mj-body: bad")},
				err:    stderrors.New("exit status 1"),
			},
			calls: 1,
		},
		{
			name:   "no_output",
			markup: validMarkup,
			runner: &scriptedRunner{},
			calls:  1,
		},
		{
			name:   "strict_rejects_structure",
			level:  mjml.ValidationStrict,
			markup: `<mjml><mj-head/></mjml>`,
			runner: &scriptedRunner{},
		},
		{
			name:   "strict_rejects_malformed",
			level:  mjml.ValidationStrict,
			markup: `just some text`,
			runner: &scriptedRunner{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := compiler.NewCLI(compiler.Options{ValidationLevel: tt.level}, tt.runner)

			_, err := c.Compile(context.Background(), tt.markup)

			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrCompile))
			assert.Len(t, tt.runner.calls, tt.calls)
		})
	}
}

func TestCompile_SoftValidationStillCompiles(t *testing.T) {
	r := &scriptedRunner{result: runner.Result{Stdout: []byte("<html/>")}}
	c := compiler.NewCLI(compiler.Options{ValidationLevel: mjml.ValidationSoft}, r)

	_, err := c.Compile(context.Background(), `<mjml><mj-head/></mjml>`)

	require.NoError(t, err)
	assert.Len(t, r.calls, 1)
}

func TestCompileAsync(t *testing.T) {
	r := &scriptedRunner{result: runner.Result{Stdout: []byte("<html/>")}}
	c := compiler.NewCLI(compiler.Options{}, r)

	html, err := compiler.CompileAsync(context.Background(), c, validMarkup).Await()

	require.NoError(t, err)
	assert.Equal(t, "<html/>", html)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := compiler.OptionsFromConfig(config.CompilerConfig{
		Binary:          "mjml",
		Args:            []string{"-i", "-s"},
		ValidationLevel: "STRICT",
		Minify:          true,
		Timeout:         time.Minute,
	})

	assert.Equal(t, mjml.ValidationStrict, opts.ValidationLevel)
	assert.Equal(t, []string{"-i", "-s"}, opts.Args)
	assert.True(t, opts.Minify)
}
