// Package presets ships starter MJML templates with the binary.
package presets

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/mjml"
)

//go:embed embedded/*.mjml
var files embed.FS

const defaultPreset = "default"

// Preset is a named starter template
type Preset struct {
	Name  string
	Title string
	MJML  string
}

// DefaultContent is the markup of a new, empty template
func DefaultContent() string {
	p, err := Get(defaultPreset)
	if err != nil {
		panic("default preset missing: " + err.Error())
	}
	return p.MJML
}

// List returns all presets sorted by name
func List() ([]Preset, error) {
	entries, err := fs.ReadDir(files, "embedded")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot list presets")
	}

	presets := make([]Preset, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		p, err := Get(name)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// Get returns a preset by name
func Get(name string) (Preset, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return Preset{}, errors.Newf(errors.ErrInvalidInput, "invalid preset name %q", name)
	}
	data, err := files.ReadFile(path.Join("embedded", name+".mjml"))
	if err != nil {
		return Preset{}, errors.Newf(errors.ErrNotFound, "no preset named %q", name).
			WithDetail("preset", name)
	}
	markup := string(data)
	return Preset{Name: name, Title: mjml.Title(markup), MJML: markup}, nil
}
