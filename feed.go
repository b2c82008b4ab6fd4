package newscrawl

import (
	"context"
	"time"
)

// FeedEntry is one item of an RSS or Atom feed.
type FeedEntry struct {
	Link    string
	Title   string
	Summary string // HTML

	// Published is nil when the feed carries no parseable date.
	Published *time.Time

	// ImageURL comes from the feed's enclosure or image element, if any.
	ImageURL string
}

// FeedParser fetches and parses a feed.
type FeedParser interface {
	// ParseFeed returns the entries of the feed at url in feed order.
	ParseFeed(ctx context.Context, url string) ([]*FeedEntry, error)
}

// FeedIngester collects records from the news portal's feeds.
type FeedIngester interface {
	// IngestFeed returns at most limit records for category.
	// Unknown categories fall back to the default feed.
	IngestFeed(ctx context.Context, category string, limit int) ([]*NewsRecord, error)
}

// ForumIngester collects records from the forum's thread listings.
type ForumIngester interface {
	// IngestForum returns at most limit records for category using a
	// browser session that is torn down before returning.
	IngestForum(ctx context.Context, category string, limit int, headless bool) ([]*NewsRecord, error)
}
