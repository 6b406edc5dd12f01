package editor

import (
	"html"
	"regexp"
	"strings"
)

var (
	blockCloseRe = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li)>|<br\s*/?>`)
	anyTagRe     = regexp.MustCompile(`<[^>]*>`)

	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// EscapeText makes plain text safe to place between tags.
func EscapeText(text string) string {
	return textEscaper.Replace(text)
}

// FromParagraphs wraps each non-blank line of plain text in a paragraph,
// escaping markup characters so typed text never turns into tags.
func FromParagraphs(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(EscapeText(line))
		b.WriteString("</p>")
	}
	return b.String()
}

// Paragraphs flattens markup into plain lines, one per block element, with
// entities decoded. It is the inverse of FromParagraphs.
func Paragraphs(doc string) string {
	text := blockCloseRe.ReplaceAllString(doc, "\n")
	text = anyTagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
