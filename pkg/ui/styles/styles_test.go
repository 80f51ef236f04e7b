package styles_test

import (
	"testing"

	"github.com/arthur-debert/mjstudio/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyles(t *testing.T) {
	r := styles.Default()

	for _, name := range []string{"Header", "Name", "Current", "ID", "Date", "Label", "Success", "Error", "Loading", "Muted"} {
		assert.True(t, r.Has(name), "missing style %s", name)
	}
	assert.True(t, r.Get("Name").GetBold())
	assert.Equal(t, 10, r.Get("Label").GetWidth())
}

func TestGetUnknownStyleIsPlain(t *testing.T) {
	r := styles.Default()

	assert.False(t, r.Has("Nope"))
	assert.Equal(t, "x", r.Get("Nope").Render("x"))
}

func TestParse(t *testing.T) {
	data := []byte(`
colors:
  red:
    light: "#ff0000"
    dark: "#aa0000"
styles:
  Alert:
    bold: true
    foreground: red
    paddingLeft: 2
`)

	r, err := styles.Parse(data)

	require.NoError(t, err)
	assert.True(t, r.Get("Alert").GetBold())
	assert.Equal(t, 2, r.Get("Alert").GetPaddingLeft())
}

func TestParseErrors(t *testing.T) {
	_, err := styles.Parse([]byte("styles: ["))
	assert.Error(t, err)

	_, err = styles.Parse([]byte("styles:\n  A:\n    foreground: nowhere\n"))
	assert.ErrorContains(t, err, "unknown color")
}
