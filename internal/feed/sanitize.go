package feed

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var brTags = regexp.MustCompile(`(?i)<br\s*/?>`)

// stripHTML converts a feed HTML fragment into plain text. Explicit line
// breaks become newlines first, so component lines in the body stay
// recognizable after tags are dropped.
func stripHTML(raw string) string {
	if raw == "" {
		return ""
	}

	normalized := brTags.ReplaceAllString(raw, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(normalized))
	if err != nil {
		return strings.TrimSpace(normalized)
	}
	return strings.TrimSpace(doc.Text())
}
