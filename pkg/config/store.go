package config

import (
	"path/filepath"
	"sync"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/filesystem"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Store is the process-wide configuration. Reads return copies; the few
// values the app changes at runtime go through Update and are saved to
// the state file.
type Store struct {
	mu        sync.RWMutex
	cfg       Config
	fs        filesystem.FS
	statePath string
}

// NewStore wraps a loaded configuration. An empty statePath disables
// SaveState.
func NewStore(cfg Config, fs filesystem.FS, statePath string) *Store {
	return &Store{cfg: cfg, fs: fs, statePath: statePath}
}

// LoadStore loads the configuration and wraps it in a Store that writes
// back to src.StateFile
func LoadStore(fs filesystem.FS, src Sources) (*Store, error) {
	cfg, err := Load(src)
	if err != nil {
		return nil, err
	}
	return NewStore(cfg, fs, src.StateFile), nil
}

// Get returns a copy of the configuration
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	cfg.Compiler.Args = append([]string(nil), s.cfg.Compiler.Args...)
	return cfg
}

// Update changes the in-memory configuration
func (s *Store) Update(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
}

// LastFolder returns the directory of the previous export
func (s *Store) LastFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Export.LastFolder
}

// SetLastFolder remembers dir for the next export and saves the state file
func (s *Store) SetLastFolder(dir string) error {
	s.Update(func(c *Config) { c.Export.LastFolder = dir })
	return s.SaveState()
}

// SaveState writes the app-managed values to the state file
func (s *Store) SaveState() error {
	if s.statePath == "" {
		return nil
	}
	logger := logging.GetLogger("config")

	var st stateFile
	st.Export.LastFolder = s.LastFolder()

	data, err := gotoml.Marshal(st)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode state")
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.statePath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot create %s", filepath.Dir(s.statePath))
	}
	if err := s.fs.WriteFile(s.statePath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot write %s", s.statePath).
			WithDetail("path", s.statePath)
	}
	logger.Debug().Str("path", s.statePath).Msg("saved state")
	return nil
}
