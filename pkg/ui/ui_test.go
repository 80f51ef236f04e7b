package ui_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/arthur-debert/mjstudio/pkg/template"
	"github.com/arthur-debert/mjstudio/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const titled = `<mjml><mj-head><mj-title>Spring</mj-title><mj-preview>Deals inside</mj-preview></mj-head><mj-body></mj-body></mjml>`

func views() []ui.TemplateView {
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []ui.TemplateView{
		ui.NewTemplateView(template.Template{ID: "a1", Name: "spring", MJML: titled, CreationDate: when, ModificationDate: when}, true),
		ui.NewTemplateView(template.Template{ID: "b2", Name: "receipt-long", MJML: "<mjml/>", ThumbnailLoading: true}, false),
	}
}

func TestNewTemplateView(t *testing.T) {
	v := views()[0]

	assert.Equal(t, "Spring", v.Title)
	assert.Equal(t, "Deals inside", v.Preview)
	assert.True(t, v.Current)
	assert.Empty(t, v.MJML)
}

func TestNewTemplateViewUnparsable(t *testing.T) {
	v := ui.NewTemplateView(template.Template{ID: "x", MJML: "just some text"}, false)

	assert.Empty(t, v.Title)
	assert.Empty(t, v.Issues)
}

func TestTextRendererTemplates(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderTemplates(views()))

	out := buf.String()
	assert.Contains(t, out, "* spring")
	assert.Contains(t, out, "  receipt-long")
	assert.Contains(t, out, "Spring")
	assert.Contains(t, out, "(rendering)")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextRendererEmptyList(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderTemplates(nil))

	assert.Contains(t, buf.String(), "No templates yet")
}

func TestTextRendererTemplateAndErrors(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	v := views()[0]
	v.MJML = titled
	require.NoError(t, r.RenderTemplate(v))
	require.NoError(t, r.RenderError(stderrors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "spring")
	assert.Contains(t, out, "preview")
	assert.Contains(t, out, "Deals inside")
	assert.Contains(t, out, titled)
	assert.Contains(t, out, "Error: boom")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderTemplates(views()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "a1", decoded[0]["id"])
	assert.Equal(t, true, decoded[0]["current"])
	assert.Equal(t, true, decoded[1]["thumbnailLoading"])
}

func TestJSONRendererFields(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderFields("paths", []ui.Field{{Key: "data", Value: "/d"}}))

	assert.JSONEq(t, `{"paths":{"data":"/d"}}`, buf.String())
}

func TestUnknownFormat(t *testing.T) {
	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	assert.Error(t, err)
}
