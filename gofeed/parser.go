// Package gofeed implements newscrawl.FeedParser using github.com/mmcdole/gofeed.
package gofeed

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/newsspeech/newscrawl"
)

// Ensure FeedParser implements newscrawl.FeedParser at compile time.
var _ newscrawl.FeedParser = (*FeedParser)(nil)

// FeedParser downloads feeds with a Fetcher and parses RSS, Atom and JSON
// feeds with gofeed. Fetching through the Fetcher keeps headers and timeouts
// in one place.
type FeedParser struct {
	fetcher newscrawl.Fetcher
	parser  *gofeed.Parser
}

// NewFeedParser creates a FeedParser that downloads feeds with fetcher.
func NewFeedParser(fetcher newscrawl.Fetcher) *FeedParser {
	return &FeedParser{
		fetcher: fetcher,
		parser:  gofeed.NewParser(),
	}
}

// ParseFeed fetches the feed at url and returns its entries in order.
// Fetch failures are returned unchanged; undecodable feeds return EPARSE.
func (p *FeedParser) ParseFeed(ctx context.Context, url string) ([]*newscrawl.FeedEntry, error) {
	body, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	feed, err := p.parser.ParseString(body)
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.EPARSE, "parse feed %s: %v", url, err)
	}

	entries := make([]*newscrawl.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, entryFromItem(item))
	}
	return entries, nil
}

func entryFromItem(item *gofeed.Item) *newscrawl.FeedEntry {
	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	var published *time.Time
	if item.PublishedParsed != nil {
		published = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed
	}

	return &newscrawl.FeedEntry{
		Link:      strings.TrimSpace(item.Link),
		Title:     strings.TrimSpace(item.Title),
		Summary:   summary,
		Published: published,
		ImageURL:  imageURL(item),
	}
}

// imageURL returns the item's image element, else its first image
// enclosure.
func imageURL(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if enc.Type == "" || strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}
