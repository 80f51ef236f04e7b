// Package styles holds the lipgloss styles used by mjstudio's terminal
// output. Styles have semantic names and adaptive colors and are defined
// in an embedded YAML file.
package styles

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition in YAML. Foreground and Background name
// entries of the colors table.
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
}

// Config is the whole styles file
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles
type Registry struct {
	styles map[string]lipgloss.Style
}

//go:embed styles.yaml
var embeddedStyles []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded styles. If the
// embedded file cannot be parsed every style is plain.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(embeddedStyles)
		if err != nil {
			r = &Registry{styles: map[string]lipgloss.Style{}}
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Parse builds a registry from YAML data
func Parse(data []byte) (*Registry, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	r := &Registry{styles: make(map[string]lipgloss.Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		st, err := build(def, colors)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		r.styles[name] = st
	}
	return r, nil
}

func build(def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	st := lipgloss.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		Underline(def.Underline)

	if def.Foreground != "" {
		c, ok := colors[def.Foreground]
		if !ok {
			return st, fmt.Errorf("unknown color %q", def.Foreground)
		}
		st = st.Foreground(c)
	}
	if def.Background != "" {
		c, ok := colors[def.Background]
		if !ok {
			return st, fmt.Errorf("unknown color %q", def.Background)
		}
		st = st.Background(c)
	}
	if def.Width > 0 {
		st = st.Width(def.Width)
	}
	if def.MarginTop > 0 {
		st = st.MarginTop(def.MarginTop)
	}
	if def.MarginBottom > 0 {
		st = st.MarginBottom(def.MarginBottom)
	}
	if def.PaddingLeft > 0 {
		st = st.PaddingLeft(def.PaddingLeft)
	}
	return st, nil
}

// Get returns the named style, or a plain style when it is not defined
func (r *Registry) Get(name string) lipgloss.Style {
	if st, ok := r.styles[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// Has reports whether name is defined
func (r *Registry) Has(name string) bool {
	_, ok := r.styles[name]
	return ok
}

// Bind returns a copy of the registry whose styles render through
// renderer, so color detection follows the renderer's output
func (r *Registry) Bind(renderer *lipgloss.Renderer) *Registry {
	bound := &Registry{styles: make(map[string]lipgloss.Style, len(r.styles))}
	for name, st := range r.styles {
		bound.styles[name] = renderer.NewStyle().Inherit(st).
			Width(st.GetWidth()).
			MarginTop(st.GetMarginTop()).
			MarginBottom(st.GetMarginBottom()).
			PaddingLeft(st.GetPaddingLeft())
	}
	return bound
}
