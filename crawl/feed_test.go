package crawl_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/crawl"
	"github.com/newsspeech/newscrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

// articleParagraph is long enough on its own to pass MinArticleLength.
const articleParagraph = "Đội tuyển Việt Nam giành chiến thắng thuyết phục trong trận đấu tối qua trên sân Mỹ Đình trước sự chứng kiến của hàng chục nghìn khán giả."

func articlePage(paragraphs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><meta name="description" content="Mô tả ngắn"></head><body><article class="fck_detail">`)
	for _, p := range paragraphs {
		b.WriteString(`<p class="Normal">` + p + `</p>`)
	}
	b.WriteString(`</article></body></html>`)
	return b.String()
}

func feedEntry(link, title, summary string) *newscrawl.FeedEntry {
	return &newscrawl.FeedEntry{Link: link, Title: title, Summary: summary}
}

func staticFeed(entries ...*newscrawl.FeedEntry) *mock.FeedParser {
	return &mock.FeedParser{
		ParseFeedFn: func(_ context.Context, _ string) ([]*newscrawl.FeedEntry, error) {
			return entries, nil
		},
	}
}

func staticFetcher(body string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return body, nil
		},
	}
}

func TestFeedSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category string
		want     string
	}{
		{"the-thao", "the-thao"},
		{"The Thao", "the-thao"},
		{"  oto xe may ", "oto-xe-may"},
		{"bat-dong-san", "bat-dong-san"},
		{"unknown", crawl.DefaultFeedSlug},
		{"", crawl.DefaultFeedSlug},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, crawl.FeedSlug(tt.category), "category %q", tt.category)
	}
}

func TestCategoryLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Kinh Doanh", crawl.CategoryLabel("kinh-doanh"))
	assert.Equal(t, "Thoi Su", crawl.CategoryLabel("thoi-su"))
	assert.Equal(t, "Oto Xe May", crawl.CategoryLabel("oto-xe-may"))
}

func TestFeedIngester_IngestFeed(t *testing.T) {
	t.Parallel()

	t.Run("skips duplicate links and keeps feed order", func(t *testing.T) {
		t.Parallel()

		var feedURL string
		feeds := &mock.FeedParser{
			ParseFeedFn: func(_ context.Context, url string) ([]*newscrawl.FeedEntry, error) {
				feedURL = url
				return []*newscrawl.FeedEntry{
					feedEntry("https://vnexpress.net/doi-tuyen-thang-4800001.html", "Đội tuyển thắng", ""),
					feedEntry("https://vnexpress.net/doi-tuyen-thang-4800001.html", "Đội tuyển thắng (bản sao)", ""),
					feedEntry("https://vnexpress.net/hlv-noi-gi-4800002.html", "HLV nói gì", ""),
				}, nil
			},
		}
		ingester := &crawl.FeedIngester{
			Feeds:   feeds,
			Fetcher: staticFetcher(articlePage(articleParagraph)),
			Now:     func() time.Time { return fixedNow },
		}

		records, err := ingester.IngestFeed(context.Background(), "the-thao", 2)

		require.NoError(t, err)
		assert.Equal(t, "https://vnexpress.net/rss/the-thao.rss", feedURL)
		require.Len(t, records, 2)
		assert.Equal(t, "https://vnexpress.net/doi-tuyen-thang-4800001.html", records[0].Link)
		assert.Equal(t, "Đội tuyển thắng", records[0].Title)
		assert.Equal(t, "https://vnexpress.net/hlv-noi-gi-4800002.html", records[1].Link)
		assert.Equal(t, "4800001", records[0].ID)
		assert.Equal(t, "4800002", records[1].ID)
		for _, r := range records {
			assert.Equal(t, newscrawl.SourceFeed, r.Source)
			assert.Equal(t, "The Thao", r.Category)
			assert.Equal(t, articleParagraph, r.Content)
			assert.Equal(t, "2025-03-01T08:00:00Z", r.Timestamp)
			assert.NoError(t, r.Validate())
		}
	})

	t.Run("never returns more than limit records", func(t *testing.T) {
		t.Parallel()

		entries := make([]*newscrawl.FeedEntry, 0, 10)
		for i := range 10 {
			entries = append(entries, feedEntry(
				"https://vnexpress.net/bai-"+string(rune('a'+i))+".html",
				"Bài "+string(rune('A'+i)), ""))
		}
		ingester := &crawl.FeedIngester{
			Feeds:   staticFeed(entries...),
			Fetcher: staticFetcher(articlePage(articleParagraph)),
		}

		records, err := ingester.IngestFeed(context.Background(), "thoi-su", 3)

		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("considers at most twice limit candidates", func(t *testing.T) {
		t.Parallel()

		// The first four entries are rejected; the fifth would be accepted
		// but lies beyond limit*2.
		ingester := &crawl.FeedIngester{
			Feeds: staticFeed(
				feedEntry("https://vnexpress.net/video/a-1.html", "Video một", ""),
				feedEntry("https://vnexpress.net/b-2.html", "https://vnexpress.net/b-2.html", ""),
				feedEntry("https://vnexpress.net/c-3.html", "", ""),
				feedEntry("https://vnexpress.net/video/d-4.html", "Video hai", ""),
				feedEntry("https://vnexpress.net/e-5.html", "Hợp lệ", ""),
			),
			Fetcher: staticFetcher(articlePage(articleParagraph)),
		}

		records, err := ingester.IngestFeed(context.Background(), "thoi-su", 2)

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NotNil(t, records)
	})

	t.Run("skips video links and link-like titles", func(t *testing.T) {
		t.Parallel()

		ingester := &crawl.FeedIngester{
			Feeds: staticFeed(
				feedEntry("https://vnexpress.net/video/ban-tin-1.html", "Bản tin", ""),
				feedEntry("https://vnexpress.net/x-2.html", `<a href="x">x</a>`, ""),
				feedEntry("https://vnexpress.net/tin-that-3.html", "Tin thật", ""),
			),
			Fetcher: staticFetcher(articlePage(articleParagraph)),
		}

		records, err := ingester.IngestFeed(context.Background(), "thoi-su", 5)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Tin thật", records[0].Title)
	})

	t.Run("unknown category uses the default feed", func(t *testing.T) {
		t.Parallel()

		var feedURL string
		ingester := &crawl.FeedIngester{
			Feeds: &mock.FeedParser{
				ParseFeedFn: func(_ context.Context, url string) ([]*newscrawl.FeedEntry, error) {
					feedURL = url
					return nil, nil
				},
			},
		}

		records, err := ingester.IngestFeed(context.Background(), "no-such-category", 5)

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, "https://vnexpress.net/rss/thoi-su.rss", feedURL)
	})

	t.Run("feed failure yields an empty list", func(t *testing.T) {
		t.Parallel()

		ingester := &crawl.FeedIngester{
			Feeds: &mock.FeedParser{
				ParseFeedFn: func(_ context.Context, _ string) ([]*newscrawl.FeedEntry, error) {
					return nil, newscrawl.Errorf(newscrawl.EFETCH, "HTTP 503")
				},
			},
		}

		records, err := ingester.IngestFeed(context.Background(), "the-thao", 5)

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("falls back to the sanitized summary when the article fails", func(t *testing.T) {
		t.Parallel()

		summary := `<a href="https://vnexpress.net/x"><img src="https://i1.vnecdn.net/a.jpg"></a>Giá vàng hôm nay tăng mạnh theo đà thế giới, nhà đầu tư thận trọng. Xem thêm tại đây`
		ingester := &crawl.FeedIngester{
			Feeds: staticFeed(feedEntry("https://vnexpress.net/gia-vang-4800010.html", "Giá vàng", summary)),
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", newscrawl.Errorf(newscrawl.EFETCH, "timeout")
				},
			},
		}

		records, err := ingester.IngestFeed(context.Background(), "kinh-doanh", 1)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Giá vàng hôm nay tăng mạnh theo đà thế giới, nhà đầu tư thận trọng.", records[0].Content)
		require.NotNil(t, records[0].Image)
		assert.Equal(t, "https://i1.vnecdn.net/a.jpg", *records[0].Image)
	})

	t.Run("short summary becomes the placeholder", func(t *testing.T) {
		t.Parallel()

		ingester := &crawl.FeedIngester{
			Feeds:   staticFeed(feedEntry("https://vnexpress.net/ngan-4800011.html", "Ngắn", "Tin ngắn.")),
			Fetcher: staticFetcher("<html><body><p>nothing here</p></body></html>"),
		}

		records, err := ingester.IngestFeed(context.Background(), "thoi-su", 1)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, newscrawl.PlaceholderFeedContent, records[0].Content)
		assert.Nil(t, records[0].Image)
	})

	t.Run("short article body falls back to the summary", func(t *testing.T) {
		t.Parallel()

		summary := "Bản tóm tắt đủ dài để vượt qua ngưỡng tối thiểu của nội dung."
		ingester := &crawl.FeedIngester{
			Feeds:   staticFeed(feedEntry("https://vnexpress.net/tom-tat-4800012.html", "Tóm tắt", summary)),
			Fetcher: staticFetcher(articlePage("Quá ngắn.")),
		}

		records, err := ingester.IngestFeed(context.Background(), "thoi-su", 1)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, summary, records[0].Content)
	})

	t.Run("uses the extractor when no article layout matches", func(t *testing.T) {
		t.Parallel()

		var extracted bool
		ingester := &crawl.FeedIngester{
			Feeds:   staticFeed(feedEntry("https://vnexpress.net/khac-4800013.html", "Bố cục khác", "")),
			Fetcher: staticFetcher("<html><body><main>layout</main></body></html>"),
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*newscrawl.ExtractResult, error) {
					extracted = true
					return &newscrawl.ExtractResult{ContentHTML: "<div><p>" + articleParagraph + "</p></div>"}, nil
				},
			},
		}

		records, err := ingester.IngestFeed(context.Background(), "thoi-su", 1)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, extracted)
		assert.Equal(t, articleParagraph, records[0].Content)
	})

	t.Run("falls back to the enclosure image and publish time", func(t *testing.T) {
		t.Parallel()

		published := time.Date(2025, 2, 28, 23, 15, 0, 0, time.FixedZone("ICT", 7*3600))
		entry := feedEntry("https://vnexpress.net/anh-4800014.html", "Ảnh", "")
		entry.ImageURL = "https://i1.vnecdn.net/enclosure.jpg"
		entry.Published = &published
		ingester := &crawl.FeedIngester{
			Feeds:   staticFeed(entry),
			Fetcher: staticFetcher(articlePage(articleParagraph)),
		}

		records, err := ingester.IngestFeed(context.Background(), "thoi-su", 1)

		require.NoError(t, err)
		require.Len(t, records, 1)
		require.NotNil(t, records[0].Image)
		assert.Equal(t, "https://i1.vnecdn.net/enclosure.jpg", *records[0].Image)
		assert.Equal(t, "2025-02-28T23:15:00+07:00", records[0].Timestamp)
	})

	t.Run("uses the injected link set", func(t *testing.T) {
		t.Parallel()

		var sets int
		ingester := &crawl.FeedIngester{
			Feeds:   staticFeed(feedEntry("https://vnexpress.net/a-1.html", "A", "")),
			Fetcher: staticFetcher(articlePage(articleParagraph)),
			NewLinkSet: func() newscrawl.LinkSet {
				sets++
				return &mock.LinkSet{
					SeenFn: func(string) bool { return true },
					AddFn:  func(string) {},
				}
			},
		}

		records, err := ingester.IngestFeed(context.Background(), "thoi-su", 1)

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 1, sets)
	})
}
