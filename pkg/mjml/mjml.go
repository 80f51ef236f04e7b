// Package mjml inspects MJML markup without compiling it. MJML is XML, so
// the document is parsed with etree to pull out head metadata and to
// catch structural mistakes before the external compiler runs.
package mjml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ValidationLevel mirrors the mjml compiler's validation modes
type ValidationLevel string

const (
	// ValidationStrict rejects markup with structural issues
	ValidationStrict ValidationLevel = "strict"
	// ValidationSoft reports issues but lets compilation proceed
	ValidationSoft ValidationLevel = "soft"
	// ValidationSkip does not inspect the markup at all
	ValidationSkip ValidationLevel = "skip"
)

// ParseValidationLevel defaults unknown values to soft
func ParseValidationLevel(s string) ValidationLevel {
	switch ValidationLevel(strings.ToLower(s)) {
	case ValidationStrict:
		return ValidationStrict
	case ValidationSkip:
		return ValidationSkip
	default:
		return ValidationSoft
	}
}

// Issue is a single structural problem found in a document
type Issue struct {
	Tag     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("<%s> %s", i.Tag, i.Message)
}

// Info is what can be learned from the markup alone
type Info struct {
	Title   string
	Preview string
	Issues  []Issue
}

// Valid reports whether no issues were found
func (i Info) Valid() bool {
	return len(i.Issues) == 0
}

// HTML entities commonly found in MJML text blocks that XML does not define
var htmlEntities = map[string]string{
	"nbsp":   "\u00a0",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"mdash":  "—",
	"ndash":  "–",
	"hellip": "…",
	"laquo":  "«",
	"raquo":  "»",
	"euro":   "€",
}

// allowedParents lists where each component may appear
var allowedParents = map[string][]string{
	"mj-head":            {"mjml"},
	"mj-body":            {"mjml"},
	"mj-include":         {"mjml", "mj-head", "mj-body", "mj-wrapper", "mj-section", "mj-column"},
	"mj-wrapper":         {"mj-body"},
	"mj-section":         {"mj-body", "mj-wrapper"},
	"mj-hero":            {"mj-body", "mj-wrapper"},
	"mj-group":           {"mj-section"},
	"mj-column":          {"mj-section", "mj-group"},
	"mj-text":            {"mj-column", "mj-hero"},
	"mj-image":           {"mj-column", "mj-hero"},
	"mj-button":          {"mj-column", "mj-hero"},
	"mj-divider":         {"mj-column", "mj-hero"},
	"mj-spacer":          {"mj-column", "mj-hero"},
	"mj-table":           {"mj-column", "mj-hero"},
	"mj-social":          {"mj-column", "mj-hero"},
	"mj-navbar":          {"mj-column", "mj-hero"},
	"mj-accordion":       {"mj-column", "mj-hero"},
	"mj-carousel":        {"mj-column", "mj-hero"},
	"mj-title":           {"mj-head"},
	"mj-preview":         {"mj-head"},
	"mj-attributes":      {"mj-head"},
	"mj-breakpoint":      {"mj-head"},
	"mj-font":            {"mj-head"},
	"mj-style":           {"mj-head"},
	"mj-html-attributes": {"mj-head"},
}

// opaque components hold HTML or component-specific children that are not
// checked further
var opaque = map[string]bool{
	"mj-text":            true,
	"mj-button":          true,
	"mj-table":           true,
	"mj-raw":             true,
	"mj-style":           true,
	"mj-attributes":      true,
	"mj-html-attributes": true,
	"mj-social":          true,
	"mj-navbar":          true,
	"mj-accordion":       true,
	"mj-carousel":        true,
	"mj-title":           true,
	"mj-preview":         true,
}

// Parse reads markup into an etree document, tolerating HTML entities
func Parse(markup string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.Entity = htmlEntities
	if err := doc.ReadFromString(markup); err != nil {
		return nil, fmt.Errorf("invalid MJML markup: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("invalid MJML markup: no root element")
	}
	return doc, nil
}

// Inspect parses markup and collects head metadata and structural issues.
// A parse failure is returned as an error, not as an issue.
func Inspect(markup string) (Info, error) {
	doc, err := Parse(markup)
	if err != nil {
		return Info{}, err
	}

	root := doc.Root()
	info := Info{}

	if title := root.FindElement("./mj-head/mj-title"); title != nil {
		info.Title = strings.TrimSpace(title.Text())
	}
	if preview := root.FindElement("./mj-head/mj-preview"); preview != nil {
		info.Preview = strings.TrimSpace(preview.Text())
	}

	if root.Tag != "mjml" {
		info.Issues = append(info.Issues, Issue{Tag: root.Tag, Message: "root element must be <mjml>"})
		return info, nil
	}
	if root.SelectElement("mj-body") == nil {
		info.Issues = append(info.Issues, Issue{Tag: "mjml", Message: "missing <mj-body>"})
	}

	walk(root, &info.Issues)
	return info, nil
}

// Title returns the <mj-title> text, or "" when absent or unparsable
func Title(markup string) string {
	info, err := Inspect(markup)
	if err != nil {
		return ""
	}
	return info.Title
}

func walk(parent *etree.Element, issues *[]Issue) {
	for _, child := range parent.ChildElements() {
		tag := child.Tag
		if tag == "mj-raw" {
			continue
		}
		parents, known := allowedParents[tag]
		switch {
		case !known && strings.HasPrefix(tag, "mj-"):
			*issues = append(*issues, Issue{Tag: tag, Message: "is not a known MJML component"})
		case !known:
			*issues = append(*issues, Issue{Tag: tag, Message: fmt.Sprintf("is not allowed inside <%s>", parent.Tag)})
		case !contains(parents, parent.Tag):
			*issues = append(*issues, Issue{
				Tag:     tag,
				Message: fmt.Sprintf("cannot be used inside <%s>, expected one of %s", parent.Tag, strings.Join(parents, ", ")),
			})
		}
		if !opaque[tag] {
			walk(child, issues)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
