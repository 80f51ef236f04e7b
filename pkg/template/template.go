// Package template defines the template record edited by mjstudio: MJML
// source, the HTML rendered from it and bookkeeping metadata.
package template

import (
	"strings"
	"time"
)

// Format names an exportable representation of a template
type Format string

const (
	FormatMJML Format = "mjml"
	FormatHTML Format = "html"
)

// ParseFormat accepts "mjml" or "html" in any case
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMJML:
		return FormatMJML, true
	case FormatHTML:
		return FormatHTML, true
	}
	return "", false
}

// Ext returns the file extension for the format, including the dot
func (f Format) Ext() string {
	return "." + string(f)
}

// DefaultName is used when a template is created without a name
const DefaultName = "no name"

// Template is the in-memory record for one email template.
//
// HTML is derived from MJML and is only refreshed by the update pipeline.
// ThumbnailLoading is transient and never written to disk.
type Template struct {
	ID               string
	Name             string
	MJML             string
	HTML             string
	CreationDate     time.Time
	ModificationDate time.Time
	ThumbnailLoading bool
}

// Content returns the field exported for the given format
func (t Template) Content(f Format) string {
	if f == FormatHTML {
		return t.HTML
	}
	return t.MJML
}

// FileName returns "<name>.<format>"
func (t Template) FileName(f Format) string {
	return t.Name + f.Ext()
}

// Clean returns the persisted form of the template
func (t Template) Clean() Document {
	return Document{
		ID:               t.ID,
		Name:             t.Name,
		MJML:             t.MJML,
		HTML:             t.HTML,
		CreationDate:     t.CreationDate,
		ModificationDate: t.ModificationDate,
	}
}

// Document is a template as stored on disk: one JSON file per template
type Document struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	MJML             string    `json:"mjml"`
	HTML             string    `json:"html"`
	CreationDate     time.Time `json:"creationDate"`
	ModificationDate time.Time `json:"modificationDate"`
}

// Template restores an in-memory record. Loading always resolves to
// ThumbnailLoading=false.
func (d Document) Template() Template {
	return Template{
		ID:               d.ID,
		Name:             d.Name,
		MJML:             d.MJML,
		HTML:             d.HTML,
		CreationDate:     d.CreationDate,
		ModificationDate: d.ModificationDate,
	}
}

// Updater computes a new version of a template from the current one
type Updater func(Template) Template

// SetMJML returns an updater replacing the MJML source
func SetMJML(mjml string) Updater {
	return func(t Template) Template {
		t.MJML = mjml
		return t
	}
}

// Rename returns an updater changing the template name
func Rename(name string) Updater {
	return func(t Template) Template {
		t.Name = name
		return t
	}
}
