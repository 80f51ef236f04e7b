// Package dialog asks the user for file paths to open or save.
//
// Static answers paths given up front (command line flags); Interactive
// prompts on the terminal. Both report a cancelled dialog as ok=false with
// a nil error.
package dialog

import (
	"context"
	"path/filepath"
	"strings"
)

// Filter restricts which files an open dialog accepts
type Filter struct {
	Name       string
	Extensions []string
}

// Accepts reports whether path has one of the filter's extensions.
// A filter without extensions accepts everything.
func (f Filter) Accepts(path string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range f.Extensions {
		if strings.EqualFold(strings.TrimPrefix(e, "."), ext) {
			return true
		}
	}
	return false
}

// MJMLFilter is used when importing templates
var MJMLFilter = Filter{Name: "MJML", Extensions: []string{"mjml"}}

// Dialogs is the open/save file dialog pair
type Dialogs interface {
	Open(ctx context.Context, filters []Filter) (path string, ok bool, err error)
	Save(ctx context.Context, defaultPath string) (path string, ok bool, err error)
}

// Static answers dialogs with fixed paths
type Static struct {
	// OpenPath is returned by Open; empty cancels.
	OpenPath string
	// SavePath is returned by Save; empty falls back to the default
	// path when AcceptDefault is set and cancels otherwise.
	SavePath      string
	AcceptDefault bool
}

func (s Static) Open(ctx context.Context, _ []Filter) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if s.OpenPath == "" {
		return "", false, nil
	}
	return s.OpenPath, true, nil
}

func (s Static) Save(ctx context.Context, defaultPath string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	switch {
	case s.SavePath != "":
		return s.SavePath, true, nil
	case s.AcceptDefault && defaultPath != "":
		return defaultPath, true, nil
	}
	return "", false, nil
}
