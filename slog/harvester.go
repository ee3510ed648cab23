package slog

import (
	"log/slog"
	"time"

	"github.com/cudev/htmlscrape"
)

// Ensure LoggingHarvester implements htmlscrape.LinkHarvester.
var _ htmlscrape.LinkHarvester = (*LoggingHarvester)(nil)

// LoggingHarvester wraps a LinkHarvester with logging.
type LoggingHarvester struct {
	next   htmlscrape.LinkHarvester
	logger *slog.Logger
}

// NewLoggingHarvester creates a new LoggingHarvester.
func NewLoggingHarvester(next htmlscrape.LinkHarvester, logger *slog.Logger) *LoggingHarvester {
	return &LoggingHarvester{next: next, logger: logger}
}

// HarvestLinks delegates to the wrapped harvester and logs the number of
// link records and how many of them are anchors.
func (h *LoggingHarvester) HarvestLinks(html string) (links []htmlscrape.RawLink, err error) {
	defer func(begin time.Time) {
		anchors := 0
		for _, l := range links {
			if l.Anchor {
				anchors++
			}
		}
		h.logger.Info("harvest links",
			"links", len(links),
			"anchors", anchors,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.HarvestLinks(html)
}
