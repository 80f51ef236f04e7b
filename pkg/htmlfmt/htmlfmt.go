// Package htmlfmt pretty-prints rendered email HTML for export.
//
// Block elements go on their own lines, indented by nesting depth. Inline
// elements and text stay on the current line. Content of pre, script,
// style and textarea, and comments (including Outlook conditional
// comments), is written verbatim.
package htmlfmt

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// DefaultIndent is used by Beautify
const DefaultIndent = "  "

var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdo": true, "br": true, "cite": true,
	"code": true, "em": true, "font": true, "i": true, "img": true, "kbd": true,
	"label": true, "q": true, "s": true, "small": true, "span": true,
	"strike": true, "strong": true, "sub": true, "sup": true, "u": true,
	"var": true,
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var verbatimElements = map[string]bool{
	"pre": true, "script": true, "style": true, "textarea": true,
}

// Beautify formats src with two-space indentation
func Beautify(src string) string {
	return BeautifyIndent(src, DefaultIndent)
}

// BeautifyIndent formats src using indent for each nesting level
func BeautifyIndent(src, indent string) string {
	p := &printer{indent: indent}
	z := html.NewTokenizer(strings.NewReader(src))

	var verbatim string
	verbatimDepth := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				// Unparsable tail is kept as-is
				p.inline(string(z.Raw()))
			}
			break
		}

		raw := string(z.Raw())

		if verbatim != "" {
			name, _ := z.TagName()
			switch {
			case tt == html.StartTagToken && string(name) == verbatim:
				verbatimDepth++
			case tt == html.EndTagToken && string(name) == verbatim:
				if verbatimDepth == 0 {
					verbatim = ""
					p.closeVerbatim(raw)
					continue
				}
				verbatimDepth--
			}
			p.verbatim(raw)
			continue
		}

		switch tt {
		case html.DoctypeToken, html.CommentToken:
			p.block(raw)
			p.newline()

		case html.TextToken:
			p.text(raw)

		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if inlineElements[string(name)] {
				p.inline(raw)
			} else {
				p.block(raw)
				p.newline()
			}

		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case verbatimElements[tag]:
				p.block(raw)
				verbatim = tag
				verbatimDepth = 0
				p.depth++
			case inlineElements[tag]:
				p.inline(raw)
			case voidElements[tag]:
				p.block(raw)
				p.newline()
			default:
				p.block(raw)
				p.newline()
				p.depth++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if inlineElements[string(name)] {
				p.inline(raw)
				continue
			}
			p.closeBlock(raw)
		}
	}

	p.newline()
	return strings.TrimRight(p.out.String(), "\n") + "\n"
}

type printer struct {
	out    bytes.Buffer
	line   strings.Builder
	indent string
	depth  int
	open   bool
}

func (p *printer) newline() {
	if !p.open {
		return
	}
	line := strings.TrimRight(p.line.String(), " \t")
	if strings.TrimSpace(line) != "" {
		p.out.WriteString(line)
		p.out.WriteByte('\n')
	}
	p.line.Reset()
	p.open = false
}

func (p *printer) start() {
	p.line.WriteString(strings.Repeat(p.indent, p.depth))
	p.open = true
}

func (p *printer) block(s string) {
	p.newline()
	p.start()
	p.line.WriteString(s)
}

func (p *printer) closeBlock(s string) {
	p.newline()
	if p.depth > 0 {
		p.depth--
	}
	p.start()
	p.line.WriteString(s)
	p.newline()
}

// closeVerbatim ends a verbatim element on the line holding its content,
// leaving that content byte for byte
func (p *printer) closeVerbatim(s string) {
	if p.depth > 0 {
		p.depth--
	}
	p.line.WriteString(s)
	p.out.WriteString(p.line.String())
	p.out.WriteByte('\n')
	p.line.Reset()
	p.open = false
}

func (p *printer) inline(s string) {
	if !p.open {
		p.start()
	}
	p.line.WriteString(s)
}

func (p *printer) verbatim(s string) {
	if !p.open {
		p.open = true
	}
	p.line.WriteString(s)
}

func (p *printer) text(s string) {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		if p.open && s != "" {
			p.line.WriteString(" ")
		}
		return
	}
	if p.open && startsWithSpace(s) {
		p.line.WriteString(" ")
	}
	p.inline(collapsed)
	if endsWithSpace(s) {
		p.line.WriteString(" ")
	}
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s[:1], " \t\r\n") == ""
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s[len(s)-1:], " \t\r\n") == ""
}
