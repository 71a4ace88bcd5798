package feed

import (
	"errors"
	"strings"
	"testing"
	"time"

	"statuswatch/internal/common"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Status - Incident History</title>
  <id>tag:status.example.com,2005:/history</id>
  <updated>2024-05-02T12:30:00Z</updated>
  <entry>
    <id>tag:status.example.com,2005:Incident/101</id>
    <published>2024-05-02T10:00:00Z</published>
    <updated>2024-05-02T12:30:00Z</updated>
    <link href="https://status.example.com/incidents/101"/>
    <title>Elevated error rates on the API</title>
    <content type="html">&lt;p&gt;We are investigating elevated error rates.&lt;/p&gt;</content>
  </entry>
  <entry>
    <id>tag:status.example.com,2005:Incident/99</id>
    <published>2024-05-01T08:00:00Z</published>
    <updated>2024-05-01T09:15:00Z</updated>
    <link href="https://status.example.com/incidents/99"/>
    <title>Dashboard slowness</title>
    <category term="Dashboard"/>
    <category term="Degraded Performance"/>
    <content type="html">&lt;p&gt;The dashboard is slow for some users.&lt;/p&gt;</content>
  </entry>
</feed>`

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Status</title>
    <link>https://status.example.com</link>
    <description>Incident history</description>
    <item>
      <guid>incident-202</guid>
      <title>Scheduled maintenance</title>
      <link>https://status.example.com/incidents/202</link>
      <pubDate>Mon, 06 May 2024 08:00:00 GMT</pubDate>
      <description>Maintenance is complete and we are monitoring the results.</description>
    </item>
  </channel>
</rss>`

func TestParser_ParseAtomFeed(t *testing.T) {
	p := NewParser(zerolog.Nop())

	incidents, err := p.Parse([]byte(atomFixture))
	require.NoError(t, err)
	require.Len(t, incidents, 2)

	first := incidents[0]
	assert.Equal(t, "tag:status.example.com,2005:Incident/101", first.ID)
	assert.Equal(t, "Elevated error rates on the API", first.Title)
	assert.Equal(t, "https://status.example.com/incidents/101", first.Link)
	assert.Equal(t, StatusInvestigating, first.Status)
	assert.Empty(t, first.Components)
	assert.Equal(t, "We are investigating elevated error rates.", first.Message)
	assert.Equal(t, time.Date(2024, 5, 2, 12, 30, 0, 0, time.UTC), first.UpdatedAt)

	second := incidents[1]
	assert.Equal(t, "tag:status.example.com,2005:Incident/99", second.ID)
	assert.Equal(t, StatusDegraded, second.Status)
	assert.Equal(t, []string{"Dashboard", "Degraded Performance"}, second.Components)
	assert.Equal(t, "The dashboard is slow for some users.", second.Message)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC), second.UpdatedAt)
}

func TestParser_ParseRSSFeed(t *testing.T) {
	p := NewParser(zerolog.Nop())

	incidents, err := p.Parse([]byte(rssFixture))
	require.NoError(t, err)
	require.Len(t, incidents, 1)

	incident := incidents[0]
	assert.Equal(t, "incident-202", incident.ID)
	assert.Equal(t, "Scheduled maintenance", incident.Title)
	assert.Equal(t, StatusMonitoring, incident.Status)
	// RSS has no updated element, so the published timestamp is used.
	assert.Equal(t, time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC), incident.UpdatedAt)
}

func TestParser_MalformedBody(t *testing.T) {
	p := NewParser(zerolog.Nop())

	incidents, err := p.Parse([]byte("this is not a feed"))
	require.Error(t, err)
	assert.Nil(t, incidents)

	var parseErr *common.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.False(t, common.IsTransient(err))
}

func TestParser_IDFallsBackToLink(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Status</title>
  <entry>
    <title>Incident without an id</title>
    <link href="https://status.example.com/incidents/7"/>
    <updated>2024-05-01T00:00:00Z</updated>
  </entry>
</feed>`

	p := NewParser(zerolog.Nop())
	incidents, err := p.Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "https://status.example.com/incidents/7", incidents[0].ID)
}

func TestParser_TimestampFallsBackToNow(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Status</title>
  <entry>
    <id>incident-1</id>
    <title>Timestampless incident</title>
  </entry>
</feed>`

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewParser(zerolog.Nop())
	p.now = func() time.Time { return fixed }

	incidents, err := p.Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, fixed, incidents[0].UpdatedAt)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		title      string
		body       string
		expected   string
	}{
		{
			name:       "category label wins",
			categories: []string{"API", "Partial Outage"},
			body:       "We are investigating.",
			expected:   StatusPartialOutage,
		},
		{
			name:       "category labels are case insensitive",
			categories: []string{"RESOLVED"},
			expected:   StatusResolved,
		},
		{
			name:     "resolved keyword",
			body:     "The incident is resolved.",
			expected: StatusResolved,
		},
		{
			name:     "fully recovered keyword",
			body:     "All services have fully recovered.",
			expected: StatusResolved,
		},
		{
			name:     "resolved outranks investigating",
			body:     "We were investigating, now resolved.",
			expected: StatusResolved,
		},
		{
			name:     "monitoring keyword",
			body:     "A fix is deployed and we are monitoring.",
			expected: StatusMonitoring,
		},
		{
			name:     "identified keyword",
			body:     "The root cause has been identified.",
			expected: StatusIdentified,
		},
		{
			name:     "title keyword",
			title:    "Investigating connectivity issues",
			expected: StatusInvestigating,
		},
		{
			name:     "degraded keyword",
			body:     "Requests are degraded in two regions.",
			expected: StatusDegraded,
		},
		{
			name:       "unknown category and no keywords",
			categories: []string{"API"},
			body:       "Something happened.",
			expected:   StatusUnknown,
		},
		{
			name:     "empty entry",
			expected: StatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deriveStatus(tt.categories, tt.title, tt.body))
		})
	}
}

func TestParseComponents(t *testing.T) {
	t.Run("category terms", func(t *testing.T) {
		components := parseComponents([]string{" API ", "", "Dashboard"}, "ignored body")
		assert.Equal(t, []string{"API", "Dashboard"}, components)
	})

	t.Run("component lines from body", func(t *testing.T) {
		body := "Current status:\n- Dashboard (Degraded Performance)\n- API (Operational)\nMore detail follows."
		components := parseComponents(nil, body)
		assert.Equal(t, []string{"Dashboard (Degraded Performance)", "API (Operational)"}, components)
	})

	t.Run("no components anywhere", func(t *testing.T) {
		assert.Empty(t, parseComponents(nil, "Just a plain update."))
	})
}

func TestLatestMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "skips component lines",
			body:     "Dashboard (Degraded Performance)\nWe are rolling out a fix.",
			expected: "We are rolling out a fix.",
		},
		{
			name:     "first non-empty line",
			body:     "\n\nA fix is being deployed.\nEarlier update text.",
			expected: "A fix is being deployed.",
		},
		{
			name:     "falls back to body when every line has parens",
			body:     "Dashboard (Degraded Performance)",
			expected: "Dashboard (Degraded Performance)",
		},
		{
			name:     "empty body",
			body:     "",
			expected: "(no message)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, latestMessage(tt.body))
		})
	}

	t.Run("long bodies are truncated", func(t *testing.T) {
		message := latestMessage(strings.Repeat("(a", 300))
		assert.Len(t, []rune(message), 200)
	})
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tags removed",
			input:    "<p>Hello <strong>world</strong></p>",
			expected: "Hello world",
		},
		{
			name:     "br becomes newline",
			input:    "Line one<br>Line two",
			expected: "Line one\nLine two",
		},
		{
			name:     "self closing br",
			input:    "Line one<br />Line two",
			expected: "Line one\nLine two",
		},
		{
			name:     "plain text passthrough",
			input:    "no tags here",
			expected: "no tags here",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripHTML(tt.input))
		})
	}
}
