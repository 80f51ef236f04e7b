package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/filesystem"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/arthur-debert/mjstudio/pkg/paths"
	"github.com/arthur-debert/mjstudio/pkg/synthfs"
	"github.com/arthur-debert/mjstudio/pkg/template"
)

type filesystemDataStore struct {
	fs     filesystem.FS
	paths  paths.Paths
	writer FileWriter
	seq    atomic.Uint64
}

// New creates a Gateway storing templates in fs under paths and writing
// user files through writer
func New(fs filesystem.FS, p paths.Paths, writer FileWriter) Gateway {
	return &filesystemDataStore{
		fs:     fs,
		paths:  p,
		writer: writer,
	}
}

func (s *filesystemDataStore) ReadTemplates(ctx context.Context) ([]template.Document, error) {
	logger := logging.GetLogger("datastore")
	dir := s.paths.TemplatesDir()

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrPersistRead, "cannot list %s", dir).
			WithDetail("path", dir)
	}

	docs := make([]template.Document, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != paths.TemplateExt {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		doc, err := s.readDocument(path)
		if err != nil {
			// One unreadable record must not hide the others
			logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable template")
			continue
		}
		docs = append(docs, doc)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].CreationDate.Equal(docs[j].CreationDate) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreationDate.Before(docs[j].CreationDate)
	})

	logger.Debug().Int("count", len(docs)).Msg("Read templates")
	return docs, nil
}

func (s *filesystemDataStore) readDocument(path string) (template.Document, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return template.Document{}, err
	}
	var doc template.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return template.Document{}, err
	}
	if doc.ID == "" {
		doc.ID = strings.TrimSuffix(filepath.Base(path), paths.TemplateExt)
	}
	return doc, nil
}

func (s *filesystemDataStore) Save(ctx context.Context, doc template.Document) error {
	if doc.ID == "" {
		return errors.New(errors.ErrInvalidInput, "cannot save a template without id")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrPersistWrite, "failed to encode template")
	}

	dir := s.paths.TemplatesDir()
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrPersistWrite, "cannot create %s", dir)
	}

	// Write then rename so a crash never leaves a truncated record
	target := s.paths.TemplatePath(doc.ID)
	tmp := fmt.Sprintf("%s.%d.tmp", target, s.seq.Add(1))
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrPersistWrite, "cannot write template %s", doc.ID).
			WithDetail("id", doc.ID)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrPersistWrite, "cannot write template %s", doc.ID).
			WithDetail("id", doc.ID)
	}

	logger := logging.GetLogger("datastore")
	logger.Debug().Str("id", doc.ID).Msg("Saved template")
	return nil
}

func (s *filesystemDataStore) DeleteTemplate(ctx context.Context, id string) error {
	if id == "" {
		return errors.New(errors.ErrInvalidInput, "cannot delete a template without id")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.paths.TemplatePath(id)
	if err := s.fs.Remove(path); err != nil {
		code := errors.ErrPersistDelete
		if os.IsNotExist(err) {
			code = errors.ErrNotFound
		}
		return errors.Wrapf(err, code, "cannot delete template %s", id).
			WithDetail("id", id)
	}

	thumb := s.paths.ThumbnailPath(id)
	if err := s.fs.Remove(thumb); err != nil && !os.IsNotExist(err) {
		logger := logging.GetLogger("datastore")
		logger.Warn().Err(err).Str("path", thumb).Msg("Could not remove thumbnail")
	}

	logger := logging.GetLogger("datastore")
	logger.Debug().Str("id", id).Msg("Deleted template")
	return nil
}

func (s *filesystemDataStore) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path = paths.ExpandHome(path)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		code := errors.ErrPersistRead
		if os.IsNotExist(err) {
			code = errors.ErrNotFound
		}
		return "", errors.Wrapf(err, code, "cannot read %s", path).WithDetail("path", path)
	}
	return string(data), nil
}

func (s *filesystemDataStore) WriteFile(ctx context.Context, path, content string) error {
	return s.WriteFiles(ctx, synthfs.FileWrite{Path: path, Content: []byte(content)})
}

func (s *filesystemDataStore) WriteFiles(ctx context.Context, writes ...synthfs.FileWrite) error {
	resolved := make([]synthfs.FileWrite, len(writes))
	for i, w := range writes {
		abs, err := filepath.Abs(paths.ExpandHome(w.Path))
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", w.Path)
		}
		w.Path = abs
		resolved[i] = w
	}
	return s.writer.WriteFiles(ctx, resolved...)
}
