package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/newsspeech/newscrawl"
)

// Ensure LoggingFeedParser implements newscrawl.FeedParser.
var _ newscrawl.FeedParser = (*LoggingFeedParser)(nil)

// LoggingFeedParser wraps a FeedParser with logging.
type LoggingFeedParser struct {
	next   newscrawl.FeedParser
	logger *slog.Logger
}

// NewLoggingFeedParser creates a new LoggingFeedParser.
func NewLoggingFeedParser(next newscrawl.FeedParser, logger *slog.Logger) *LoggingFeedParser {
	return &LoggingFeedParser{next: next, logger: logger}
}

// ParseFeed logs the feed URL and entry count.
func (p *LoggingFeedParser) ParseFeed(ctx context.Context, url string) (entries []*newscrawl.FeedEntry, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse feed",
			"url", url,
			"entries", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseFeed(ctx, url)
}
