// Test Type: Unit Test
// Description: Tests for the headless browser snapshotter with an in-memory filesystem

package snapshot_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/paths"
	"github.com/arthur-debert/mjstudio/pkg/runner"
	"github.com/arthur-debert/mjstudio/pkg/snapshot"
	"github.com/arthur-debert/mjstudio/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// browserRunner writes a fake PNG where the browser would put its screenshot
type browserRunner struct {
	fs    *testutil.MemoryFS
	err   error
	calls []runner.Command
	pages []string
}

func (b *browserRunner) Run(_ context.Context, c runner.Command) (runner.Result, error) {
	b.calls = append(b.calls, c)
	if b.err != nil {
		return runner.Result{}, b.err
	}
	for _, arg := range c.Args {
		if strings.HasPrefix(arg, "file://") {
			page, _ := b.fs.ReadFile(strings.TrimPrefix(arg, "file://"))
			b.pages = append(b.pages, string(page))
		}
	}
	for _, arg := range c.Args {
		if out, ok := strings.CutPrefix(arg, "--screenshot="); ok {
			_ = b.fs.WriteFile(out, []byte("PNG"), 0644)
		}
	}
	return runner.Result{}, nil
}

func setup(t *testing.T, opts snapshot.Options) (*snapshot.Chrome, *browserRunner, *testutil.MemoryFS, paths.Paths) {
	t.Helper()
	fs := testutil.NewMemoryFS()
	p := paths.NewWithRoot("/root")
	r := &browserRunner{fs: fs}
	return snapshot.NewChrome(opts, r, fs, p), r, fs, p
}

func TestTakeSnapshotWritesThumbnail(t *testing.T) {
	c, r, fs, p := setup(t, snapshot.Options{Binary: "/bin/chromium", Width: 600, Height: 900})

	require.NoError(t, c.TakeSnapshot(context.Background(), "abc", "<html>hi</html>"))

	data, err := fs.ReadFile(p.ThumbnailPath("abc"))
	require.NoError(t, err)
	assert.Equal(t, "PNG", string(data))

	require.Len(t, r.calls, 1)
	assert.Equal(t, "/bin/chromium", r.calls[0].Name)
	assert.Contains(t, r.calls[0].Args, "--window-size=600,900")
	assert.Equal(t, []string{"<html>hi</html>"}, r.pages)

	entries, err := fs.ReadDir("/root/cache/snapshots")
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch files are removed")
}

func TestCaptureUsesRequestedWidth(t *testing.T) {
	c, r, _, _ := setup(t, snapshot.Options{Binary: "chrome"})

	png, err := c.Capture(context.Background(), "<html/>", 320)

	require.NoError(t, err)
	assert.Equal(t, "PNG", string(png))
	assert.Contains(t, r.calls[0].Args, "--window-size=320,800")
}

func TestCaptureFindsBrowserOnPath(t *testing.T) {
	c, r, _, _ := setup(t, snapshot.Options{})
	c.WithLookPath(func(name string) (string, error) {
		if name == "chromium" {
			return "/usr/bin/chromium", nil
		}
		return "", stderrors.New("not found")
	})

	_, err := c.Capture(context.Background(), "<html/>", 0)

	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/chromium", r.calls[0].Name)
}

func TestCaptureErrors(t *testing.T) {
	t.Run("no_browser", func(t *testing.T) {
		c, _, _, _ := setup(t, snapshot.Options{})
		c.WithLookPath(func(string) (string, error) { return "", stderrors.New("not found") })

		_, err := c.Capture(context.Background(), "<html/>", 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSnapshot))
	})

	t.Run("browser_fails", func(t *testing.T) {
		c, r, _, _ := setup(t, snapshot.Options{Binary: "chrome"})
		r.err = stderrors.New("crashed")

		_, err := c.Capture(context.Background(), "<html/>", 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSnapshot))
	})

	t.Run("missing_id", func(t *testing.T) {
		c, _, _, _ := setup(t, snapshot.Options{Binary: "chrome"})

		err := c.TakeSnapshot(context.Background(), "", "<html/>")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
