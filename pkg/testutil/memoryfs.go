package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/mjstudio/pkg/filesystem"
)

// MemoryFS is an in-memory filesystem.FS with per-path error injection.
// Storage is filesystem.NewMemory; an injected error is returned by every
// operation naming that exact path (either side of a rename).
type MemoryFS struct {
	mu         sync.Mutex
	fs         filesystem.FS
	errorPaths map[string]error
	readCount  int
	writeCount int
}

// NewMemoryFS creates an empty in-memory filesystem
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		fs:         filesystem.NewMemory(),
		errorPaths: make(map[string]error),
	}
}

func clean(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join("/", path)
	}
	return filepath.Clean(path)
}

// injected returns the error registered for any of paths
func (m *MemoryFS) injected(paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		if err, ok := m.errorPaths[clean(p)]; ok {
			return err
		}
	}
	return nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	m.readCount++
	m.mu.Unlock()
	if err := m.injected(name); err != nil {
		return nil, err
	}
	return m.fs.ReadFile(clean(name))
}

// WriteFile writes data, creating parent directories as needed
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	m.writeCount++
	m.mu.Unlock()
	if err := m.injected(name); err != nil {
		return err
	}
	path := clean(name)
	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return m.fs.WriteFile(path, data, perm)
}

func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	if err := m.injected(name); err != nil {
		return nil, err
	}
	return m.fs.Stat(clean(name))
}

func (m *MemoryFS) Remove(name string) error {
	if err := m.injected(name); err != nil {
		return err
	}
	return m.fs.Remove(clean(name))
}

// Rename moves a file, replacing any existing file at newpath
func (m *MemoryFS) Rename(oldpath, newpath string) error {
	if err := m.injected(oldpath, newpath); err != nil {
		return err
	}
	return m.fs.Rename(clean(oldpath), clean(newpath))
}

func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	if err := m.injected(path); err != nil {
		return err
	}
	return m.fs.MkdirAll(clean(path), perm)
}

// ReadDir returns the entries of a directory sorted by name
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := m.injected(name); err != nil {
		return nil, err
	}
	return m.fs.ReadDir(clean(name))
}

// Exists reports whether path exists, ignoring injected errors
func (m *MemoryFS) Exists(path string) bool {
	_, err := m.fs.Stat(clean(path))
	return err == nil
}

// WithError makes every operation on path fail with err
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[clean(path)] = err
	return m
}

// ClearError removes an injected error
func (m *MemoryFS) ClearError(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.errorPaths, clean(path))
}

// Stats returns the number of ReadFile and WriteFile calls
func (m *MemoryFS) Stats() (reads, writes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCount, m.writeCount
}
