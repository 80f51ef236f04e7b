package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns a topic's raw content into terminal output. format is
// the topic file extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(content, format string) string

func (f RendererFunc) Render(content, format string) string { return f(content, format) }

// Plain prints every topic as written
var Plain Renderer = RendererFunc(func(content, _ string) string { return content })

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	// Style is "dark", "light", "notty", "auto" or a path to a style file
	Style string
	// Width wraps lines; 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer renders with the style detected from the terminal
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// NewPlainGlamourRenderer renders markdown without colors, for pipes and
// --no-color
func NewPlainGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "notty"}
}

// Render formats .md content; other formats are returned unchanged, as is
// content glamour fails on
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
