package slog

import (
	"log/slog"
	"time"

	"github.com/cudev/htmlscrape"
)

// Ensure LoggingExtractor implements htmlscrape.Extractor.
var _ htmlscrape.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging of block counts.
type LoggingExtractor struct {
	next   htmlscrape.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next htmlscrape.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs how many blocks were
// found and how many of them are content.
func (e *LoggingExtractor) Extract(html string) (result *htmlscrape.ExtractResult, err error) {
	defer func(begin time.Time) {
		var blocks, content int
		if result != nil {
			blocks = len(result.Blocks)
			for _, b := range result.Blocks {
				if b.IsContent {
					content++
				}
			}
		}
		e.logger.Info("extract",
			"blocks", blocks,
			"content", content,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
