package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// News portal endpoints.
const (
	FeedURLPattern  = "https://vnexpress.net/rss/%s.rss"
	DefaultFeedSlug = "thoi-su"
	FeedIDPrefix    = "vne_"
)

// MinArticleLength is the shortest article body, in characters, preferred
// over the feed summary.
const MinArticleLength = 100

// FeedSlugs maps accepted category names to feed slugs.
var FeedSlugs = map[string]string{
	"thoi-su":      "thoi-su",
	"the-gioi":     "the-gioi",
	"kinh-doanh":   "kinh-doanh",
	"bat-dong-san": "bat-dong-san",
	"giai-tri":     "giai-tri",
	"the-thao":     "the-thao",
	"phap-luat":    "phap-luat",
	"giao-duc":     "giao-duc",
	"suc-khoe":     "suc-khoe",
	"doi-song":     "doi-song",
	"du-lich":      "du-lich",
	"khoa-hoc":     "khoa-hoc",
	"so-hoa":       "so-hoa",
	"oto-xe-may":   "oto-xe-may",
}

var feedIDPattern = regexp.MustCompile(`-(\d+)(?:\.html)?$`)

// FeedSlug resolves a category to a feed slug. Input is lowercased and
// spaces become hyphens; unknown categories resolve to DefaultFeedSlug.
func FeedSlug(category string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "-")
	if slug, ok := FeedSlugs[key]; ok {
		return slug
	}
	return DefaultFeedSlug
}

// FeedURL returns the RSS URL of a slug.
func FeedURL(slug string) string {
	return fmt.Sprintf(FeedURLPattern, slug)
}

// CategoryLabel titleizes a slug: "kinh-doanh" becomes "Kinh Doanh".
func CategoryLabel(slug string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(slug, "-", " "))
}

// Ensure FeedIngester implements newscrawl.FeedIngester at compile time.
var _ newscrawl.FeedIngester = (*FeedIngester)(nil)

// FeedIngester collects records from the news portal's RSS feeds, fetching
// each article page for its full body.
type FeedIngester struct {
	Feeds   newscrawl.FeedParser
	Fetcher newscrawl.Fetcher

	// Extractor is tried when no article layout matches. Nil disables it.
	Extractor newscrawl.Extractor

	// NewLinkSet creates the per-call dedup set. Defaults to a map.
	NewLinkSet func() newscrawl.LinkSet

	Logger *slog.Logger
	Now    func() time.Time
}

func (i *FeedIngester) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return i.Logger
}

func (i *FeedIngester) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

func (i *FeedIngester) linkSet() newscrawl.LinkSet {
	if i.NewLinkSet == nil {
		return newMapLinkSet()
	}
	return i.NewLinkSet()
}

// IngestFeed returns at most limit records for category in feed order.
// Feed failures are logged and yield an empty list; per-entry failures fall
// back to the feed summary.
func (i *FeedIngester) IngestFeed(ctx context.Context, category string, limit int) ([]*newscrawl.NewsRecord, error) {
	records := []*newscrawl.NewsRecord{}
	if limit <= 0 {
		return records, nil
	}

	slug := FeedSlug(category)
	logger := i.logger().With("source", newscrawl.SourceFeed, "category", slug)

	entries, err := i.Feeds.ParseFeed(ctx, FeedURL(slug))
	if err != nil {
		logger.Warn("feed unavailable", "err", err)
		return records, nil
	}
	if len(entries) == 0 {
		logger.Warn("feed has no entries")
		return records, nil
	}

	if n := limit * 2; len(entries) > n {
		entries = entries[:n]
	}

	label := CategoryLabel(slug)
	seen := i.linkSet()
	for _, entry := range entries {
		if len(records) >= limit {
			break
		}

		link := strings.TrimSpace(entry.Link)
		if link == "" || seen.Seen(link) {
			continue
		}
		seen.Add(link)

		// Video and podcast pages have no article body.
		if strings.Contains(link, "video") {
			continue
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" || newscrawl.LooksLikeLink(title) {
			continue
		}

		image := goquery.FirstImage(entry.Summary, link)
		if image == "" {
			image = entry.ImageURL
		}

		published := i.now()
		if entry.Published != nil {
			published = *entry.Published
		}

		record := &newscrawl.NewsRecord{
			ID:        newscrawl.RecordID(link, feedIDPattern, FeedIDPrefix),
			Title:     title,
			Content:   i.content(ctx, logger, link, entry.Summary),
			Image:     newscrawl.StringPtr(image),
			Link:      link,
			Timestamp: newscrawl.FormatTimestamp(published),
			Source:    newscrawl.SourceFeed,
			Category:  label,
		}
		records = append(records, record)
		logger.Debug("record", "id", record.ID, "chars", utf8.RuneCountInString(record.Content))
	}

	return records, nil
}

// content returns the article body of link, or the sanitized summary when
// the article cannot be fetched or is shorter than MinArticleLength.
func (i *FeedIngester) content(ctx context.Context, logger *slog.Logger, link, summary string) string {
	body, err := i.article(ctx, link)
	if err != nil {
		logger.Warn("article unavailable, using summary", "url", link, "err", err)
	} else if body != "" {
		return body
	}
	text := newscrawl.Sanitize(goquery.ExtractText(summary, goquery.SpaceSeparator))
	return newscrawl.EnsureMinContent(text, newscrawl.PlaceholderFeedContent)
}

// article fetches link and returns the first body strategy result of at
// least MinArticleLength characters, or "" when none qualifies.
func (i *FeedIngester) article(ctx context.Context, link string) (string, error) {
	html, err := i.Fetcher.Fetch(ctx, link)
	if err != nil {
		return "", err
	}

	for _, strategy := range i.bodyStrategies() {
		if body := strings.TrimSpace(strategy(html)); utf8.RuneCountInString(body) >= MinArticleLength {
			return body, nil
		}
	}
	return "", nil
}

// bodyStrategies lists the article body extractors in the order they are
// tried.
func (i *FeedIngester) bodyStrategies() []func(html string) string {
	strategies := []func(string) string{
		func(html string) string { return goquery.ExtractBody(html, goquery.ArticleSelectors) },
	}
	if i.Extractor != nil {
		strategies = append(strategies, func(html string) string {
			result, err := i.Extractor.Extract(html)
			if err != nil {
				return ""
			}
			return goquery.ExtractText(result.ContentHTML, goquery.NewlineSeparator)
		})
	}
	return append(strategies, goquery.MetaDescription)
}
