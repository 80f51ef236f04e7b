package config

import "time"

// Config is the full mjstudio configuration
type Config struct {
	Compiler CompilerConfig `koanf:"compiler"`
	Snapshot SnapshotConfig `koanf:"snapshot"`
	Preview  PreviewConfig  `koanf:"preview"`
	Export   ExportConfig   `koanf:"export"`
	Mail     MailConfig     `koanf:"mail"`
}

// CompilerConfig drives the external MJML compiler
type CompilerConfig struct {
	Binary          string        `koanf:"binary"`
	Args            []string      `koanf:"args"`
	ValidationLevel string        `koanf:"validation_level"`
	Minify          bool          `koanf:"minify"`
	Timeout         time.Duration `koanf:"timeout"`
}

// SnapshotConfig drives the headless browser used for thumbnails.
// An empty Binary means the browser is looked up on PATH.
type SnapshotConfig struct {
	Binary  string        `koanf:"binary"`
	Width   int           `koanf:"width"`
	Height  int           `koanf:"height"`
	Timeout time.Duration `koanf:"timeout"`
}

// PreviewConfig holds the screenshot widths
type PreviewConfig struct {
	MobileWidth  int `koanf:"mobile_width"`
	DesktopWidth int `koanf:"desktop_width"`
}

// ExportConfig controls exports. LastFolder is remembered in the state file.
type ExportConfig struct {
	Beautify   bool   `koanf:"beautify"`
	LastFolder string `koanf:"last_folder"`
}

// MailConfig is the SMTP account used for test sends
type MailConfig struct {
	Host     string        `koanf:"host"`
	Port     int           `koanf:"port"`
	Username string        `koanf:"username"`
	Password string        `koanf:"password"`
	From     string        `koanf:"from"`
	FromName string        `koanf:"from_name"`
	UseTLS   bool          `koanf:"use_tls"`
	UseSSL   bool          `koanf:"use_ssl"`
	Timeout  time.Duration `koanf:"timeout"`
}

// stateFile is the shape of state.toml
type stateFile struct {
	Export struct {
		LastFolder string `toml:"last_folder"`
	} `toml:"export"`
}
