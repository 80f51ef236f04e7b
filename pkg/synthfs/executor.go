package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// FileWrite is one file to be produced
type FileWrite struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// Executor runs file writes as synthfs pipelines
type Executor struct {
	logger     zerolog.Logger
	dryRun     bool
	root       string
	filesystem synthfs.FileSystem
	seq        atomic.Uint64
}

// NewExecutor creates an executor on the whole file system
func NewExecutor() *Executor {
	return NewExecutorWithRoot("/")
}

// NewExecutorWithRoot creates an executor confined to root. Every target
// must be an absolute path inside root.
func NewExecutorWithRoot(root string) *Executor {
	return &Executor{
		logger:     logging.GetLogger("synthfs"),
		root:       root,
		filesystem: filesystem.NewOSFileSystem(root),
	}
}

// EnableDryRun logs the planned writes instead of executing them
func (e *Executor) EnableDryRun(dryRun bool) *Executor {
	e.dryRun = dryRun
	return e
}

// WriteFiles writes every file in a single pipeline. Missing parent
// directories are created. Existing files are replaced only when the
// pipeline succeeds; on failure they keep their previous content.
func (e *Executor) WriteFiles(ctx context.Context, writes ...FileWrite) error {
	if len(writes) == 0 {
		return nil
	}

	if e.dryRun {
		e.logger.Info().Msg("Dry run mode - files would be written:")
		for _, w := range writes {
			e.logger.Info().
				Str("target", w.Path).
				Int("contentLen", len(w.Content)).
				Msg("Would write file")
		}
		return nil
	}

	pipeline := synthfs.NewMemPipeline()
	plannedDirs := make(map[string]bool)
	// Existing targets are written to a sibling temp file and only
	// renamed over the original once the whole pipeline succeeded.
	var staged []stagedWrite

	for _, w := range writes {
		rel, err := e.relative(w.Path)
		if err != nil {
			return err
		}

		dir := filepath.Dir(rel)
		if dir != "." && !plannedDirs[dir] {
			plannedDirs[dir] = true
			if _, statErr := os.Stat(filepath.Join(e.root, dir)); os.IsNotExist(statErr) {
				if err := pipeline.Add(e.createDir(dir)); err != nil {
					return errors.Wrapf(err, errors.ErrPersistWrite,
						"failed to add operation to pipeline")
				}
			}
		}

		if info, statErr := os.Stat(w.Path); statErr == nil {
			if info.IsDir() {
				return errors.Newf(errors.ErrPersistWrite, "target is a directory: %s", w.Path).
					WithDetail("path", w.Path)
			}
			tmp := fmt.Sprintf("%s.%d.tmp", w.Path, e.seq.Add(1))
			tmpRel, err := e.relative(tmp)
			if err != nil {
				return err
			}
			staged = append(staged, stagedWrite{tmp: tmp, target: w.Path})
			w.Path = tmp
			rel = tmpRel
		}

		if err := pipeline.Add(e.writeFile(rel, w)); err != nil {
			removeTemps(staged)
			return errors.Wrapf(err, errors.ErrPersistWrite,
				"failed to add operation to pipeline")
		}
	}

	e.logger.Debug().Int("operationCount", len(writes)+len(plannedDirs)).Msg("Executing pipeline")

	result := synthfs.NewExecutor().Run(ctx, pipeline, e.filesystem)
	if result.GetError() != nil {
		removeTemps(staged)
		e.logger.Error().Err(result.GetError()).Msg("Pipeline execution failed")
		return errors.Wrapf(result.GetError(), errors.ErrPersistWrite,
			"failed to write %d file(s)", len(writes))
	}

	for i, st := range staged {
		if err := os.Rename(st.tmp, st.target); err != nil {
			removeTemps(staged[i:])
			return errors.Wrapf(err, errors.ErrPersistWrite,
				"failed to replace existing file: %s", st.target).WithDetail("path", st.target)
		}
	}

	e.logger.Info().Int("files", len(writes)).Int("replaced", len(staged)).Msg("Files written")
	return nil
}

// stagedWrite is a replacement written beside its target
type stagedWrite struct {
	tmp    string
	target string
}

func removeTemps(staged []stagedWrite) {
	for _, st := range staged {
		_ = os.Remove(st.tmp)
	}
}

// WriteFile writes a single file
func (e *Executor) WriteFile(ctx context.Context, path string, content []byte) error {
	return e.WriteFiles(ctx, FileWrite{Path: path, Content: content})
}

// relative converts an absolute target to a path relative to the root
func (e *Executor) relative(target string) (string, error) {
	if target == "" {
		return "", errors.New(errors.ErrInvalidInput, "write requires a target path")
	}
	if !filepath.IsAbs(target) {
		return "", errors.Newf(errors.ErrInvalidInput, "target must be absolute: %s", target)
	}
	rel, err := filepath.Rel(e.root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "target %s is outside %s", target, e.root)
	}
	return rel, nil
}

func (e *Executor) createDir(rel string) synthfs.Operation {
	opID := core.OperationID(fmt.Sprintf("create-dir-%s", rel))
	op := operations.NewCreateDirectoryOperation(opID, rel)
	op.SetItem(&directoryItem{path: rel, mode: 0755})
	return synthfs.NewOperationsPackageAdapter(op)
}

func (e *Executor) writeFile(rel string, w FileWrite) synthfs.Operation {
	mode := w.Mode
	if mode == 0 {
		mode = 0644
	}
	opID := core.OperationID(fmt.Sprintf("write-file-%s", rel))
	op := operations.NewCreateFileOperation(opID, rel)
	op.SetItem(&fileItem{path: rel, content: w.Content, mode: mode})
	return synthfs.NewOperationsPackageAdapter(op)
}

// fileItem implements the interface needed for file operations
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

// directoryItem implements the interface needed for directory operations
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
