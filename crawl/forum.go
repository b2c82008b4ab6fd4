package crawl

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/goquery"
)

// Forum endpoints and selectors.
const (
	ForumBaseURL         = "https://www.otofun.net"
	DefaultForumCategory = "doi-song"
	ForumIDPrefix        = "otf_"
	NextPageSelector     = "a.pageNav-jump--next"
)

// Forum placeholders substituted for thread content.
const (
	PlaceholderForumContent = "Xem chi tiết tại diễn đàn."
	PlaceholderForumError   = "Lỗi tải nội dung."
)

// Forum defaults.
const (
	DefaultListingDelay = 3 * time.Second
	DefaultDetailDelay  = 2 * time.Second
	DefaultMaxPages     = 20
)

// ForumListings maps categories to forum listing URLs.
var ForumListings = map[string]string{
	"oto-xe-may":   ForumBaseURL + "/forums/oto-xe-may.2/",
	"kinh-doanh":   ForumBaseURL + "/forums/tttm-xe-co.292/",
	"bat-dong-san": ForumBaseURL + "/forums/bat-dong-san.77/",
	"doi-song":     ForumBaseURL + "/forums/cafe-otofun.16/",
	"giai-tri":     ForumBaseURL + "/forums/cafe-otofun.16/",
	"the-thao":     ForumBaseURL + "/forums/van-hoa-the-thao.163/",
	"du-lich":      ForumBaseURL + "/forums/cac-chuyen-di.24/",
}

var forumIDPattern = regexp.MustCompile(`\.(\d+)/?$`)

// ForumListingURL resolves a category to its listing URL, falling back to
// the DefaultForumCategory listing.
func ForumListingURL(category string) string {
	if u, ok := ForumListings[category]; ok {
		return u
	}
	return ForumListings[DefaultForumCategory]
}

// Ensure ForumIngester implements newscrawl.ForumIngester at compile time.
var _ newscrawl.ForumIngester = (*ForumIngester)(nil)

// ForumIngester collects the opening posts of forum threads with a
// scripted browser. Each call owns one browser session.
type ForumIngester struct {
	Launcher  newscrawl.BrowserLauncher
	UserAgent string

	// Fixed waits for client-side rendering after loading a listing page
	// and a thread page. Negative values disable the wait.
	ListingDelay time.Duration
	DetailDelay  time.Duration

	// MaxPages bounds pagination. Zero means DefaultMaxPages.
	MaxPages int

	NewLinkSet func() newscrawl.LinkSet
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewForumIngester returns a ForumIngester with the default delays.
func NewForumIngester(launcher newscrawl.BrowserLauncher, logger *slog.Logger) *ForumIngester {
	return &ForumIngester{
		Launcher:     launcher,
		ListingDelay: DefaultListingDelay,
		DetailDelay:  DefaultDetailDelay,
		MaxPages:     DefaultMaxPages,
		Logger:       logger,
	}
}

func (i *ForumIngester) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return i.Logger
}

func (i *ForumIngester) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

func (i *ForumIngester) maxPages() int {
	if i.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return i.MaxPages
}

// IngestForum returns at most limit records for category. A browser that
// cannot be launched returns ESESSION; listing failures end pagination and
// return the records collected so far. The session is always terminated.
func (i *ForumIngester) IngestForum(ctx context.Context, category string, limit int, headless bool) (records []*newscrawl.NewsRecord, err error) {
	records = []*newscrawl.NewsRecord{}
	if limit <= 0 {
		return records, nil
	}

	logger := i.logger().With("source", newscrawl.SourceForum, "category", category)

	session, err := i.Launcher.Launch(ctx, newscrawl.SessionOptions{
		Headless:  headless,
		UserAgent: i.UserAgent,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if qerr := session.Quit(); qerr != nil {
			logger.Warn("browser quit", "err", qerr)
		}
	}()

	listing := ForumListingURL(category)
	if err := session.Navigate(ctx, listing); err != nil {
		logger.Warn("listing unavailable", "url", listing, "err", err)
		return records, nil
	}
	_ = sleep(ctx, i.ListingDelay)

	var seen newscrawl.LinkSet = newMapLinkSet()
	if i.NewLinkSet != nil {
		seen = i.NewLinkSet()
	}

	for page := 1; len(records) < limit; page++ {
		html, err := session.HTML(ctx)
		if err != nil {
			logger.Warn("listing unreadable", "page", page, "err", err)
			break
		}

		threads := goquery.ExtractThreads(html, ForumBaseURL, goquery.ThreadSelectors)
		if len(threads) == 0 {
			logger.Debug("no threads on page", "page", page)
			break
		}

		for _, thread := range threads {
			if len(records) >= limit {
				break
			}
			if seen.Seen(thread.Link) {
				continue
			}
			seen.Add(thread.Link)
			if newscrawl.LooksLikeLink(thread.Title) {
				logger.Debug("skip link-like title", "url", thread.Link)
				continue
			}
			records = append(records, i.record(ctx, logger, session, thread, category))
		}

		if len(records) >= limit || page >= i.maxPages() {
			break
		}

		if err := session.Click(ctx, NextPageSelector); err != nil {
			if newscrawl.ErrorCode(err) != newscrawl.ENOTFOUND {
				logger.Warn("next page", "page", page, "err", err)
			}
			break
		}
		_ = sleep(ctx, i.ListingDelay)
	}

	return records, nil
}

// record builds the record of one thread, reading its opening post in a
// separate tab so the listing keeps its state.
func (i *ForumIngester) record(ctx context.Context, logger *slog.Logger, session newscrawl.BrowserSession, thread goquery.Thread, category string) *newscrawl.NewsRecord {
	content, image := PlaceholderForumContent, ""

	var post *goquery.Post
	err := withTab(ctx, session, func(newscrawl.TabHandle) error {
		var err error
		post, err = i.readPost(ctx, session, thread.Link)
		return err
	})
	switch {
	case post != nil:
		if post.Text != "" {
			content = post.Text
		}
		image = post.Image
		if err != nil {
			logger.Warn("thread tab teardown", "url", thread.Link, "err", err)
		}
	case newscrawl.ErrorCode(err) == newscrawl.ENOTFOUND:
		logger.Debug("thread has no post body", "url", thread.Link)
	default:
		logger.Warn("thread unavailable", "url", thread.Link, "err", err)
		content = PlaceholderForumError
	}

	return &newscrawl.NewsRecord{
		ID:        newscrawl.RecordID(thread.Link, forumIDPattern, ForumIDPrefix),
		Title:     thread.Title,
		Content:   content,
		Image:     newscrawl.StringPtr(image),
		Link:      thread.Link,
		Timestamp: newscrawl.FormatTimestamp(i.now()),
		Source:    newscrawl.SourceForum,
		Category:  category,
	}
}

// readPost loads link in the focused tab and extracts its opening post.
func (i *ForumIngester) readPost(ctx context.Context, session newscrawl.BrowserSession, link string) (*goquery.Post, error) {
	if err := session.Navigate(ctx, link); err != nil {
		return nil, err
	}
	_ = sleep(ctx, i.DetailDelay)

	html, err := session.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return goquery.ExtractPost(html, link, goquery.PostSelectors)
}
