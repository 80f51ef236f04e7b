package htmlfmt

import (
	"strings"

	"golang.org/x/net/html"
)

var skipText = map[string]bool{
	"head": true, "script": true, "style": true, "title": true,
}

var lineBreaks = map[string]bool{
	"br": true, "p": true, "div": true, "tr": true, "li": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Text extracts readable text from an HTML document, one line per block.
// It is used as the plain-text part of test emails.
func Text(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))

	var lines []string
	var line []string
	skipDepth := 0

	flush := func() {
		if len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line = line[:0]
		}
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			flush()
			return strings.Join(lines, "\n")

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipText[tag] && tt == html.StartTagToken {
				skipDepth++
			}
			if lineBreaks[tag] {
				flush()
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipText[tag] && skipDepth > 0 {
				skipDepth--
			}
			if lineBreaks[tag] {
				flush()
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if words := strings.Fields(string(z.Text())); len(words) > 0 {
				line = append(line, strings.Join(words, " "))
			}
		}
	}
}
