package newscrawl

import "time"

// Extractor names accepted by Config.Extractor.
const (
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
	ExtractorNone        = "none"
)

// Config holds the options of one ingestion run.
type Config struct {
	FeedCategories        []string `json:"feedCategories"`
	ForumCategories       []string `json:"forumCategories"`
	FeedLimitPerCategory  int      `json:"feedLimitPerCategory"`
	ForumLimitPerCategory int      `json:"forumLimitPerCategory"`
	Headless              bool     `json:"headless"`
	OutputPath            string   `json:"outputPath"`
	StoreConnectionString string   `json:"storeConnectionString"`

	StoreDatabase       string        `json:"storeDatabase"`
	StoreCollection     string        `json:"storeCollection"`
	StoreConnectTimeout time.Duration `json:"storeConnectTimeout"`

	// Extractor selects the generic body extractor tried after the feed's
	// own content selectors.
	Extractor string `json:"extractor"`

	// RunTimeout bounds the whole run. It is checked between categories.
	// Zero means no timeout.
	RunTimeout time.Duration `json:"runTimeout"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		FeedCategories: []string{
			"thoi-su", "kinh-doanh", "giai-tri", "the-thao",
			"phap-luat", "giao-duc", "suc-khoe", "doi-song",
			"du-lich", "khoa-hoc", "so-hoa", "oto-xe-may",
		},
		ForumCategories:       []string{"oto-xe-may", "kinh-doanh", "du-lich", "doi-song"},
		FeedLimitPerCategory:  30,
		ForumLimitPerCategory: 10,
		Headless:              true,
		OutputPath:            "data/all_news.json",
		StoreConnectionString: "mongodb://localhost:27017/",
		StoreDatabase:         "newsspeech",
		StoreCollection:       "news",
		StoreConnectTimeout:   2 * time.Second,
		Extractor:             ExtractorReadability,
	}
}

// Validate returns an error if the configuration cannot drive a run.
func (c *Config) Validate() error {
	if c.FeedLimitPerCategory <= 0 {
		return Errorf(EINVALID, "feed limit per category must be positive")
	}
	if c.ForumLimitPerCategory <= 0 {
		return Errorf(EINVALID, "forum limit per category must be positive")
	}
	if c.OutputPath == "" {
		return Errorf(EINVALID, "output path required")
	}
	switch c.Extractor {
	case ExtractorReadability, ExtractorTrafilatura, ExtractorNone, "":
	default:
		return Errorf(EINVALID, "unknown extractor %q", c.Extractor)
	}
	if c.StoreConnectTimeout < 0 || c.RunTimeout < 0 {
		return Errorf(EINVALID, "timeouts cannot be negative")
	}
	return nil
}
