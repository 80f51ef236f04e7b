// Package snapshot renders template HTML to PNG images with a headless
// Chrome or Chromium. Thumbnails are stored under the thumbnails directory
// as <id>.png; Capture returns raw images for screenshots.
package snapshot

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/config"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/filesystem"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/arthur-debert/mjstudio/pkg/paths"
	"github.com/arthur-debert/mjstudio/pkg/runner"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Snapshotter produces images of rendered templates
type Snapshotter interface {
	// TakeSnapshot renders html and stores it as the thumbnail for id.
	TakeSnapshot(ctx context.Context, id, html string) error

	// Capture renders html at the given viewport width.
	Capture(ctx context.Context, html string, width int) ([]byte, error)
}

// Browsers tried, in order, when no binary is configured
var Browsers = []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome"}

// Options configure the browser
type Options struct {
	Binary  string
	Width   int
	Height  int
	Timeout time.Duration
}

// OptionsFromConfig maps the [snapshot] config section
func OptionsFromConfig(cfg config.SnapshotConfig) Options {
	return Options{
		Binary:  cfg.Binary,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Timeout: cfg.Timeout,
	}
}

// Chrome takes screenshots with a headless browser
type Chrome struct {
	opts     Options
	runner   runner.Runner
	fs       filesystem.FS
	paths    paths.Paths
	lookPath func(string) (string, error)
	logger   zerolog.Logger
}

// NewChrome creates a snapshotter. Scratch files go to the cache dir.
func NewChrome(opts Options, r runner.Runner, fs filesystem.FS, p paths.Paths) *Chrome {
	if opts.Width <= 0 {
		opts.Width = 650
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}
	return &Chrome{
		opts:     opts,
		runner:   r,
		fs:       fs,
		paths:    p,
		lookPath: exec.LookPath,
		logger:   logging.GetLogger("snapshot"),
	}
}

// WithLookPath replaces the PATH lookup used to find a browser
func (c *Chrome) WithLookPath(fn func(string) (string, error)) *Chrome {
	c.lookPath = fn
	return c
}

func (c *Chrome) TakeSnapshot(ctx context.Context, id, html string) error {
	if id == "" {
		return errors.New(errors.ErrInvalidInput, "snapshot requires a template id")
	}

	png, err := c.Capture(ctx, html, c.opts.Width)
	if err != nil {
		return err
	}

	target := c.paths.ThumbnailPath(id)
	if err := c.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrSnapshot, "cannot create %s", filepath.Dir(target))
	}
	if err := c.fs.WriteFile(target, png, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrSnapshot, "cannot write thumbnail for %s", id).
			WithDetail("path", target)
	}

	c.logger.Debug().Str("id", id).Str("path", target).Msg("Thumbnail written")
	return nil
}

func (c *Chrome) Capture(ctx context.Context, html string, width int) ([]byte, error) {
	if width <= 0 {
		width = c.opts.Width
	}

	binary, err := c.browser()
	if err != nil {
		return nil, err
	}

	scratch := filepath.Join(c.paths.CacheDir(), "snapshots")
	if err := c.fs.MkdirAll(scratch, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSnapshot, "cannot create %s", scratch)
	}

	name := uuid.NewString()
	page := filepath.Join(scratch, name+".html")
	out := filepath.Join(scratch, name+paths.ThumbnailExt)
	defer func() {
		_ = c.fs.Remove(page)
		_ = c.fs.Remove(out)
	}()

	if err := c.fs.WriteFile(page, []byte(html), 0600); err != nil {
		return nil, errors.Wrap(err, errors.ErrSnapshot, "cannot write page for snapshot")
	}

	_, err = c.runner.Run(ctx, runner.Command{
		Name: binary,
		Args: []string{
			"--headless=new",
			"--disable-gpu",
			"--hide-scrollbars",
			"--no-first-run",
			fmt.Sprintf("--window-size=%d,%d", width, c.opts.Height),
			"--screenshot=" + out,
			"file://" + page,
		},
		Timeout: c.opts.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSnapshot, "browser failed to render snapshot")
	}

	png, err := c.fs.ReadFile(out)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSnapshot, "browser produced no image")
	}

	c.logger.Debug().Int("width", width).Int("bytes", len(png)).Msg("Captured snapshot")
	return png, nil
}

func (c *Chrome) browser() (string, error) {
	if c.opts.Binary != "" {
		return c.opts.Binary, nil
	}
	for _, name := range Browsers {
		if path, err := c.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrSnapshot, "no headless browser found; set snapshot.binary").
		WithDetail("tried", Browsers)
}
