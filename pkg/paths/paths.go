// Package paths provides centralized path handling for mjstudio.
// It follows the XDG Base Directory specification and lets each
// directory be overridden through an environment variable.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory (templates, thumbnails)
	EnvDataDir = "MJSTUDIO_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory (config.toml)
	EnvConfigDir = "MJSTUDIO_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory (state.toml, log file)
	EnvStateDir = "MJSTUDIO_STATE_DIR"

	// EnvCacheDir overrides the XDG cache directory (snapshot scratch files)
	EnvCacheDir = "MJSTUDIO_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Layout of the data directory. These names are part of the on-disk
// format and are not user-configurable.
const (
	AppDirName        = "mjstudio"
	TemplatesDirName  = "templates"
	ThumbnailsDirName = "thumbnails"
	ConfigFileName    = "config.toml"
	StateFileName     = "state.toml"
	LogFileName       = "mjstudio.log"
	TemplateExt       = ".json"
	ThumbnailExt      = ".png"
)

// Paths resolves every location mjstudio reads or writes
type Paths interface {
	DataDir() string
	ConfigDir() string
	StateDir() string
	CacheDir() string
	TemplatesDir() string
	ThumbnailsDir() string
	TemplatePath(id string) string
	ThumbnailPath(id string) string
	ConfigFilePath() string
	StateFilePath() string
	LogFilePath() string
}

type paths struct {
	data   string
	config string
	state  string
	cache  string
}

// New resolves the directories from the environment
func New() Paths {
	p := &paths{}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.data = ExpandHome(dir)
	} else {
		p.data = filepath.Join(xdg.DataHome, AppDirName)
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.config = ExpandHome(dir)
	} else {
		p.config = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.state = ExpandHome(dir)
	} else {
		p.state = filepath.Join(xdg.StateHome, AppDirName)
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cache = ExpandHome(dir)
	} else {
		p.cache = filepath.Join(xdg.CacheHome, AppDirName)
	}

	return p
}

// NewWithRoot places every directory under a single root. Used by tests
// and by the --home flag.
func NewWithRoot(root string) Paths {
	root = ExpandHome(root)
	return &paths{
		data:   filepath.Join(root, "data"),
		config: filepath.Join(root, "config"),
		state:  filepath.Join(root, "state"),
		cache:  filepath.Join(root, "cache"),
	}
}

func (p *paths) DataDir() string   { return p.data }
func (p *paths) ConfigDir() string { return p.config }
func (p *paths) StateDir() string  { return p.state }
func (p *paths) CacheDir() string  { return p.cache }

func (p *paths) TemplatesDir() string {
	return filepath.Join(p.data, TemplatesDirName)
}

func (p *paths) ThumbnailsDir() string {
	return filepath.Join(p.data, ThumbnailsDirName)
}

// TemplatePath returns the file holding the template with the given id
func (p *paths) TemplatePath(id string) string {
	return filepath.Join(p.TemplatesDir(), id+TemplateExt)
}

// ThumbnailPath returns the snapshot image for the template with the given id
func (p *paths) ThumbnailPath(id string) string {
	return filepath.Join(p.ThumbnailsDir(), id+ThumbnailExt)
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.config, ConfigFileName)
}

func (p *paths) StateFilePath() string {
	return filepath.Join(p.state, StateFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.state, LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}
