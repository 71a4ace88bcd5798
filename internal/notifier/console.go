package notifier

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"statuswatch/internal/common"
	"statuswatch/internal/feed"
)

const consoleBanner = "======================================================================"

// ConsoleSink pretty-prints one block per incident change. A mutex serializes
// whole blocks so output from concurrent monitors does not interleave.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleSink creates a console sink writing to out.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

// Notify prints one incident block.
func (c *ConsoleSink) Notify(_ context.Context, feedName string, incident feed.Incident) error {
	timestamp := incident.UpdatedAt.Format("2006-01-02 15:04:05")

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(consoleBanner + "\n")
	if len(incident.Components) > 0 {
		for _, component := range incident.Components {
			fmt.Fprintf(&b, "[%s] Product: %s - %s\n", timestamp, feedName, component)
		}
	} else {
		fmt.Fprintf(&b, "[%s] Product: %s\n", timestamp, feedName)
	}
	fmt.Fprintf(&b, "  Incident: %s\n", incident.Title)
	fmt.Fprintf(&b, "  Status:   %s\n", incident.Status)
	fmt.Fprintf(&b, "  Message:  %s\n", incident.Message)
	fmt.Fprintf(&b, "  Link:     %s\n", incident.Link)
	b.WriteString(consoleBanner + "\n")

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.out, b.String()); err != nil {
		return common.NewSinkError("console", err)
	}
	return nil
}
