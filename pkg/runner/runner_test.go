package runner

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestRun_CapturesStdoutFromStdin(t *testing.T) {
	requireBinary(t, "cat")

	res, err := New().Run(context.Background(), Command{Name: "cat", Stdin: []byte("<mjml/>")})

	require.NoError(t, err)
	assert.Equal(t, "<mjml/>", string(res.Stdout))
}

func TestRun_Failure(t *testing.T) {
	requireBinary(t, "sh")

	res, err := New().Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo broken >&2; exit 3"}})

	require.Error(t, err)
	assert.Equal(t, "broken\n", string(res.Stderr))
	assert.Equal(t, "broken", errors.GetErrorDetails(err)["stderr"])
}

func TestRun_Timeout(t *testing.T) {
	requireBinary(t, "sleep")

	_, err := New().Run(context.Background(), Command{Name: "sleep", Args: []string{"5"}, Timeout: 50 * time.Millisecond})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute command: sleep")
}

func TestRun_Validation(t *testing.T) {
	_, err := New().Run(context.Background(), Command{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = New().Run(context.Background(), Command{Name: "true", Dir: "/definitely/not/here"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "mjml --stdin --stdout", Command{Name: "mjml", Args: []string{"--stdin", "--stdout"}}.String())
}
