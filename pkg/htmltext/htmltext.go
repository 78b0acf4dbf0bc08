package htmltext

import (
	"regexp"
	"strings"
)

var (
	openParagraph  = regexp.MustCompile(`(?i)<p[^>]*>`)
	closeParagraph = regexp.MustCompile(`(?i)</p>`)
	lineBreak      = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTag         = regexp.MustCompile(`<[^>]+>`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

// Strip converts HTML markup to plain text. Opening paragraph tags and line
// breaks become newlines, all other tags are removed, runs of three or more
// newlines collapse to two, and the result is trimmed.
//
// This is best-effort extraction over regular expressions, not an HTML
// parser; deeply nested or malformed markup will not round-trip cleanly.
func Strip(html string) string {
	s := openParagraph.ReplaceAllString(html, "\n")
	s = closeParagraph.ReplaceAllString(s, "")
	s = lineBreak.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
