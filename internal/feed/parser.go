package feed

import (
	"bytes"
	"strings"
	"time"

	"statuswatch/internal/common"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// Parser converts raw Atom/RSS feed bodies into normalized incidents.
// A Parser is not safe for concurrent use; each monitor owns its own.
type Parser struct {
	parser *gofeed.Parser
	logger zerolog.Logger
	now    func() time.Time
}

// NewParser creates a new Parser.
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{
		parser: gofeed.NewParser(),
		logger: logger.With().Str("component", "FeedParser").Logger(),
		now:    time.Now,
	}
}

// Parse converts a raw feed body into incidents, preserving feed order.
// Malformed bodies yield a ParseError; the caller treats that as one cycle's
// failure, not as fatal.
func (p *Parser) Parse(body []byte) ([]Incident, error) {
	parsed, err := p.parser.Parse(bytes.NewReader(body))
	if err != nil {
		p.logger.Debug().Err(err).Int("body_size", len(body)).Msg("Failed to parse feed body")
		return nil, common.NewParseError("", err)
	}

	incidents := make([]Incident, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		incidents = append(incidents, p.normalizeItem(item))
	}
	return incidents, nil
}

// normalizeItem maps one feed entry onto the incident model.
func (p *Parser) normalizeItem(item *gofeed.Item) Incident {
	body := stripHTML(itemBody(item))

	return Incident{
		ID:         itemID(item),
		Title:      itemTitle(item),
		Link:       item.Link,
		Status:     deriveStatus(item.Categories, item.Title, body),
		Components: parseComponents(item.Categories, body),
		Message:    latestMessage(body),
		UpdatedAt:  p.itemTimestamp(item),
	}
}

// itemID prefers the entry GUID and falls back to the entry link; some feeds
// omit ids entirely.
func itemID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	return item.Link
}

func itemTitle(item *gofeed.Item) string {
	if item.Title != "" {
		return item.Title
	}
	return "Unknown Incident"
}

// itemBody returns the richest text the entry carries: full content when
// present, summary otherwise.
func itemBody(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	return item.Description
}

// itemTimestamp prefers the updated timestamp, falls back to published, and
// finally to the current time so the change detector always has a value.
func (p *Parser) itemTimestamp(item *gofeed.Item) time.Time {
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	return p.now().UTC()
}

// deriveStatus determines the current status label for an entry. Explicit
// category labels win; otherwise the title and body are scanned for status
// keywords, most-final first.
func deriveStatus(categories []string, title, body string) string {
	for _, category := range categories {
		if canonical, ok := statusLabels[strings.ToLower(strings.TrimSpace(category))]; ok {
			return canonical
		}
	}

	lower := strings.ToLower(title + "\n" + body)
	switch {
	case strings.Contains(lower, "resolved"), strings.Contains(lower, "fully recovered"):
		return StatusResolved
	case strings.Contains(lower, "monitoring"):
		return StatusMonitoring
	case strings.Contains(lower, "identified"):
		return StatusIdentified
	case strings.Contains(lower, "investigating"):
		return StatusInvestigating
	case strings.Contains(lower, "degraded"):
		return StatusDegraded
	}
	return StatusUnknown
}

// parseComponents extracts affected component names. Category terms are the
// standard location; when a feed carries none, component lines shaped like
// "Name (Status)" are recovered from the body text.
func parseComponents(categories []string, body string) []string {
	var components []string
	for _, category := range categories {
		if category = strings.TrimSpace(category); category != "" {
			components = append(components, category)
		}
	}
	if len(components) > 0 {
		return components
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.Trim(line, "- "))
		if strings.Contains(line, "(") && strings.Contains(line, ")") {
			components = append(components, line)
		}
	}
	return components
}

// latestMessage extracts the most recent human-readable update line: the
// first non-empty line that is not a component line, otherwise a truncated
// form of the whole body.
func latestMessage(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.Contains(line, "(") {
			return line
		}
	}

	if body == "" {
		return "(no message)"
	}
	if runes := []rune(body); len(runes) > 200 {
		return string(runes[:200])
	}
	return body
}
