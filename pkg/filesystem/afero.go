package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"
)

// aferoFS implements FS on top of an afero filesystem
type aferoFS struct {
	fs afero.Fs
}

// NewAfero wraps an afero filesystem. NewMemory is the usual in-memory
// choice for tests and dry runs.
func NewAfero(fs afero.Fs) FS {
	return &aferoFS{fs: fs}
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() FS {
	return NewAfero(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}
