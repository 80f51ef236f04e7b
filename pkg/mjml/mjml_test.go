package mjml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const welcome = `<mjml>
  <mj-head>
    <mj-title>Welcome aboard</mj-title>
    <mj-preview>Thanks for signing up</mj-preview>
  </mj-head>
  <mj-body>
    <mj-section>
      <mj-column>
        <mj-text>Hello&nbsp;<b>friend</b></mj-text>
        <mj-button href="https://example.com">Go</mj-button>
      </mj-column>
    </mj-section>
  </mj-body>
</mjml>`

func TestInspectValidDocument(t *testing.T) {
	info, err := Inspect(welcome)
	require.NoError(t, err)

	assert.Equal(t, "Welcome aboard", info.Title)
	assert.Equal(t, "Thanks for signing up", info.Preview)
	assert.True(t, info.Valid(), "issues: %v", info.Issues)
}

func TestInspectStructuralIssues(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		wantTag string
	}{
		{
			name:    "wrong root",
			markup:  `<html><body/></html>`,
			wantTag: "html",
		},
		{
			name:    "missing body",
			markup:  `<mjml><mj-head/></mjml>`,
			wantTag: "mjml",
		},
		{
			name:    "column outside section",
			markup:  `<mjml><mj-body><mj-column><mj-text>x</mj-text></mj-column></mj-body></mjml>`,
			wantTag: "mj-column",
		},
		{
			name:    "unknown component",
			markup:  `<mjml><mj-body><mj-sektion/></mj-body></mjml>`,
			wantTag: "mj-sektion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Inspect(tt.markup)
			require.NoError(t, err)
			require.False(t, info.Valid())
			assert.Equal(t, tt.wantTag, info.Issues[0].Tag)
		})
	}
}

func TestInspectUnparsable(t *testing.T) {
	_, err := Inspect("just some text")
	assert.Error(t, err)
	assert.Equal(t, "", Title("not xml <"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Welcome aboard", Title(welcome))
	assert.Equal(t, "", Title(`<mjml><mj-body/></mjml>`))
}

func TestParseValidationLevel(t *testing.T) {
	assert.Equal(t, ValidationStrict, ParseValidationLevel("STRICT"))
	assert.Equal(t, ValidationSkip, ParseValidationLevel("skip"))
	assert.Equal(t, ValidationSoft, ParseValidationLevel("whatever"))
}
