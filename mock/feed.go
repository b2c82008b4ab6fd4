package mock

import (
	"context"

	"github.com/newsspeech/newscrawl"
)

var (
	_ newscrawl.FeedParser    = (*FeedParser)(nil)
	_ newscrawl.FeedIngester  = (*FeedIngester)(nil)
	_ newscrawl.ForumIngester = (*ForumIngester)(nil)
)

// FeedParser is a mock implementation of newscrawl.FeedParser.
type FeedParser struct {
	ParseFeedFn func(ctx context.Context, url string) ([]*newscrawl.FeedEntry, error)
}

func (p *FeedParser) ParseFeed(ctx context.Context, url string) ([]*newscrawl.FeedEntry, error) {
	return p.ParseFeedFn(ctx, url)
}

// FeedIngester is a mock implementation of newscrawl.FeedIngester.
type FeedIngester struct {
	IngestFeedFn func(ctx context.Context, category string, limit int) ([]*newscrawl.NewsRecord, error)
}

func (i *FeedIngester) IngestFeed(ctx context.Context, category string, limit int) ([]*newscrawl.NewsRecord, error) {
	return i.IngestFeedFn(ctx, category, limit)
}

// ForumIngester is a mock implementation of newscrawl.ForumIngester.
type ForumIngester struct {
	IngestForumFn func(ctx context.Context, category string, limit int, headless bool) ([]*newscrawl.NewsRecord, error)
}

func (i *ForumIngester) IngestForum(ctx context.Context, category string, limit int, headless bool) ([]*newscrawl.NewsRecord, error) {
	return i.IngestForumFn(ctx, category, limit, headless)
}
