// Package ui prints command results as styled terminal output, plain text
// or JSON.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/mjml"
	"github.com/arthur-debert/mjstudio/pkg/template"
	"github.com/arthur-debert/mjstudio/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DateLayout is used for creation and modification dates
const DateLayout = "2006-01-02 15:04"

// TemplateView is the printable form of a template
type TemplateView struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Title            string    `json:"title,omitempty"`
	Preview          string    `json:"preview,omitempty"`
	CreationDate     time.Time `json:"creationDate"`
	ModificationDate time.Time `json:"modificationDate"`
	Current          bool      `json:"current,omitempty"`
	ThumbnailLoading bool      `json:"thumbnailLoading,omitempty"`
	Issues           []string  `json:"issues,omitempty"`
	MJML             string    `json:"mjml,omitempty"`
}

// NewTemplateView summarizes t. Markup that cannot be inspected only
// loses its title and preview.
func NewTemplateView(t template.Template, current bool) TemplateView {
	v := TemplateView{
		ID:               t.ID,
		Name:             t.Name,
		CreationDate:     t.CreationDate,
		ModificationDate: t.ModificationDate,
		Current:          current,
		ThumbnailLoading: t.ThumbnailLoading,
	}
	if info, err := mjml.Inspect(t.MJML); err == nil {
		v.Title = info.Title
		v.Preview = info.Preview
		for _, issue := range info.Issues {
			v.Issues = append(v.Issues, issue.String())
		}
	}
	return v
}

// Field is one key/value line
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Renderer prints command results
type Renderer interface {
	RenderTemplates(list []TemplateView) error
	RenderTemplate(v TemplateView) error
	RenderFields(title string, fields []Field) error
	RenderMessage(msg string) error
	RenderError(err error) error
}

// NewRenderer creates a renderer for format writing to w. FormatAuto is
// resolved against w.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch Resolve(format, w) {
	case FormatTerminal:
		lr := lipgloss.NewRenderer(w)
		return &styledRenderer{w: w, styles: styles.Default().Bind(lr)}, nil
	case FormatText:
		lr := lipgloss.NewRenderer(w)
		lr.SetColorProfile(termenv.Ascii)
		return &styledRenderer{w: w, styles: styles.Default().Bind(lr)}, nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return &jsonRenderer{enc: enc}, nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

type styledRenderer struct {
	w      io.Writer
	styles *styles.Registry
}

func (r *styledRenderer) RenderTemplates(list []TemplateView) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(r.w, r.styles.Get("Muted").Render("No templates yet. Create one with: mjstudio new"))
		return err
	}

	width := 0
	for _, v := range list {
		width = max(width, lipgloss.Width(v.Name))
	}

	var b strings.Builder
	for _, v := range list {
		marker, nameStyle := "  ", r.styles.Get("Name")
		if v.Current {
			marker, nameStyle = "* ", r.styles.Get("Current")
		}
		name := nameStyle.Render(v.Name) + strings.Repeat(" ", width-lipgloss.Width(v.Name))
		line := marker + name + "  " +
			r.styles.Get("ID").Render(v.ID) + "  " +
			r.styles.Get("Date").Render(v.ModificationDate.Local().Format(DateLayout))
		if v.Title != "" {
			line += "  " + v.Title
		}
		if v.ThumbnailLoading {
			line += "  " + r.styles.Get("Loading").Render("(rendering)")
		}
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *styledRenderer) RenderTemplate(v TemplateView) error {
	fields := []Field{
		{Key: "id", Value: v.ID},
		{Key: "created", Value: v.CreationDate.Local().Format(DateLayout)},
		{Key: "modified", Value: v.ModificationDate.Local().Format(DateLayout)},
	}
	if v.Title != "" {
		fields = append(fields, Field{Key: "title", Value: v.Title})
	}
	if v.Preview != "" {
		fields = append(fields, Field{Key: "preview", Value: v.Preview})
	}
	if err := r.RenderFields(v.Name, fields); err != nil {
		return err
	}
	for _, issue := range v.Issues {
		if _, err := fmt.Fprintln(r.w, r.styles.Get("Warning").Render("! "+issue)); err != nil {
			return err
		}
	}
	if v.MJML != "" {
		_, err := fmt.Fprintf(r.w, "\n%s\n", strings.TrimRight(v.MJML, "\n"))
		return err
	}
	return nil
}

func (r *styledRenderer) RenderFields(title string, fields []Field) error {
	var b strings.Builder
	if title != "" {
		b.WriteString(r.styles.Get("Header").Render(title) + "\n")
	}
	for _, f := range fields {
		b.WriteString(r.styles.Get("Label").Render(f.Key) + " " + f.Value + "\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *styledRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, r.styles.Get("Success").Render(msg))
	return err
}

func (r *styledRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.w, r.styles.Get("Error").Render("Error: ")+err.Error())
	return werr
}

type jsonRenderer struct {
	enc *json.Encoder
}

func (r *jsonRenderer) RenderTemplates(list []TemplateView) error {
	if list == nil {
		list = []TemplateView{}
	}
	return r.enc.Encode(list)
}

func (r *jsonRenderer) RenderTemplate(v TemplateView) error {
	return r.enc.Encode(v)
}

func (r *jsonRenderer) RenderFields(title string, fields []Field) error {
	obj := make(map[string]string, len(fields))
	for _, f := range fields {
		obj[f.Key] = f.Value
	}
	if title == "" {
		return r.enc.Encode(obj)
	}
	return r.enc.Encode(map[string]any{title: obj})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.enc.Encode(map[string]string{"message": msg})
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.enc.Encode(map[string]string{"error": err.Error()})
}
