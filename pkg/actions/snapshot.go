package actions

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mjstudio/pkg/async"
	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/state"
	"github.com/arthur-debert/mjstudio/pkg/synthfs"
	"github.com/arthur-debert/mjstudio/pkg/template"
)

// MakeSnapshot marks t as loading and renders its thumbnail in the
// background. Completion clears the flag if the template still exists.
func (s *Studio) MakeSnapshot(ctx context.Context, t template.Template) *async.ExecFuture {
	id, html := t.ID, t.HTML

	s.store.Dispatch(state.UpdateTemplate{ID: id, Updater: setLoading(true)})

	return s.background(ctx, func(ctx context.Context) error {
		err := s.snapshotter.TakeSnapshot(ctx, id, html)
		if err != nil {
			s.logger.Warn().Err(err).Str("id", id).Msg("Snapshot failed")
		}
		if _, ok := s.store.Find(id); ok {
			s.store.Dispatch(state.UpdateTemplate{ID: id, Updater: setLoading(false)})
		}
		return err
	})
}

func setLoading(loading bool) template.Updater {
	return func(t template.Template) template.Template {
		t.ThumbnailLoading = loading
		return t
	}
}

// Screenshot renders t at the mobile and desktop preview widths and writes
// <name>-mobile.png and <name>-desktop.png into dir. It returns the paths
// written.
func (s *Studio) Screenshot(ctx context.Context, t template.Template, dir string) ([]string, error) {
	preview := s.config.Get().Preview
	sizes := []struct {
		label string
		width int
	}{
		{"mobile", preview.MobileWidth},
		{"desktop", preview.DesktopWidth},
	}

	futures := make([]*async.Future[[]byte], len(sizes))
	for i, size := range sizes {
		width := size.width
		futures[i] = async.Go(ctx, func(ctx context.Context) ([]byte, error) {
			return s.snapshotter.Capture(ctx, t.HTML, width)
		})
	}

	writes := make([]synthfs.FileWrite, 0, len(sizes))
	for i, f := range futures {
		png, err := f.Await()
		if err != nil {
			s.notifier.Error(fmt.Sprintf("Screenshot failed: %v", err))
			return nil, errors.Wrapf(err, errors.ErrSnapshot, "cannot capture %s screenshot", sizes[i].label)
		}
		writes = append(writes, synthfs.FileWrite{
			Path:    filepath.Join(dir, fmt.Sprintf("%s-%s.png", screenshotName(t), sizes[i].label)),
			Content: png,
		})
	}

	if err := s.gateway.WriteFiles(ctx, writes...); err != nil {
		s.notifier.Error("Screenshots not saved!")
		return nil, errors.Wrap(err, errors.ErrExport, "cannot write screenshots")
	}

	written := make([]string, len(writes))
	for i, w := range writes {
		written[i] = w.Path
	}
	s.notifier.Notify("Screenshots saved!")
	return written, nil
}

var separators = strings.NewReplacer("/", "-", "\\", "-")

// screenshotName keeps screenshot files inside the target directory.
func screenshotName(t template.Template) string {
	name := separators.Replace(strings.TrimSpace(t.Name))
	if name == "" {
		return t.ID
	}
	return name
}
