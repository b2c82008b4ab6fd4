package main

import (
	"context"
	"fmt"
	"time"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/bloom"
	"github.com/newsspeech/newscrawl/crawl"
	"github.com/newsspeech/newscrawl/fs"
	"github.com/newsspeech/newscrawl/gofeed"
	newshttp "github.com/newsspeech/newscrawl/http"
	"github.com/newsspeech/newscrawl/readability"
	"github.com/newsspeech/newscrawl/rod"
	newsslog "github.com/newsspeech/newscrawl/slog"
	"github.com/newsspeech/newscrawl/trafilatura"
)

// Run executes the run command. Category failures are reported but do not
// fail the command; only configuration errors and a missing browser do.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg := c.config(deps.Config)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newscrawl.ErrorMessage(err))
		return err
	}

	if deps.Forum == nil && len(cfg.ForumCategories) > 0 {
		if _, err := rod.FindBrowser(); err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or pass --skip-forum")
			return fmt.Errorf("failed to find browser: %w", err)
		}
	}

	store := deps.Store
	if store == nil {
		var err error
		if store, err = openStore(deps.Ctx, cfg, deps.RunID, deps.Logger); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newscrawl.ErrorMessage(err))
			return err
		}
		defer closeStore(store, deps.Logger)
	}

	var file newscrawl.RecordWriter = deps.File
	if deps.File == nil {
		file = fs.NewRecordFile(cfg.OutputPath)
	}

	feed := deps.Feed
	if feed == nil {
		fetcher := newshttp.NewFetcher(newshttp.WithTimeout(c.FetchTimeout))
		defer fetcher.Close()
		feed = c.newFeedIngester(cfg, fetcher, deps)
	}
	forum := deps.Forum
	if forum == nil {
		forum = c.newForumIngester(cfg, deps)
	}

	ctx := deps.Ctx
	if cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}

	coordinator := &crawl.Coordinator{
		Feed:     feed,
		Forum:    forum,
		Logger:   deps.Logger,
		Progress: progressPrinter(deps),
	}
	report, err := coordinator.Run(ctx, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newscrawl.ErrorMessage(err))
		return err
	}

	sink := &crawl.Sink{File: file, Store: store, Logger: deps.Logger}
	result := sink.Persist(context.WithoutCancel(ctx), report.Records)

	printSummary(deps, report, result)
	return nil
}

func (c *RunCmd) newFeedIngester(cfg newscrawl.Config, fetcher newscrawl.Fetcher, deps *Dependencies) *crawl.FeedIngester {
	logged := newsslog.NewLoggingFetcher(fetcher, deps.Logger)
	return &crawl.FeedIngester{
		Feeds:      newsslog.NewLoggingFeedParser(gofeed.NewFeedParser(logged), deps.Logger),
		Fetcher:    logged,
		Extractor:  newExtractor(cfg.Extractor),
		NewLinkSet: linkSets(cfg.FeedLimitPerCategory * 2),
		Logger:     deps.Logger,
	}
}

func (c *RunCmd) newForumIngester(cfg newscrawl.Config, deps *Dependencies) *crawl.ForumIngester {
	launcher := rod.NewLoggingLauncher(rod.NewLauncher(), deps.Logger)
	ingester := crawl.NewForumIngester(launcher, deps.Logger)
	ingester.UserAgent = c.UserAgent
	ingester.MaxPages = c.MaxPages
	ingester.NewLinkSet = forumLinkSets(cfg.ForumLimitPerCategory, c.MaxPages)
	return ingester
}

// forumLinkSets sizes the forum link sets for the pages a category may
// visit.
func forumLinkSets(limit, maxPages int) func() newscrawl.LinkSet {
	if maxPages <= 0 {
		maxPages = crawl.DefaultMaxPages
	}
	return linkSets(limit * maxPages)
}

// newExtractor returns the generic article extractor named by name, or nil
// for none.
func newExtractor(name string) newscrawl.Extractor {
	switch name {
	case newscrawl.ExtractorTrafilatura:
		return trafilatura.NewExtractor()
	case newscrawl.ExtractorNone:
		return nil
	default:
		return readability.NewExtractor()
	}
}

// linkSets returns a factory of bloom-fronted link sets sized for n links.
func linkSets(n int) func() newscrawl.LinkSet {
	return func() newscrawl.LinkSet {
		return bloom.NewLinkSet(uint(max(n, 1)), bloom.DefaultFPRate)
	}
}

func progressPrinter(deps *Dependencies) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		if e.Error != nil {
			fmt.Fprintf(deps.Stderr, "skip %s/%s: %s\n", e.Source, e.Category, newscrawl.ErrorMessage(e.Error))
		}
		fmt.Fprintf(deps.Stdout, "[%d/%d] %s %s: %d records\n", e.Completed, e.Total, e.Source, e.Category, e.Records)
	}
}

func printSummary(deps *Dependencies, report *crawl.Report, result crawl.PersistResult) {
	fmt.Fprintf(deps.Stdout, "Collected %d records in %s", len(report.Records), report.Elapsed.Round(time.Millisecond))
	if report.Failures > 0 {
		fmt.Fprintf(deps.Stdout, " (%d categories failed)", report.Failures)
	}
	if report.Cancelled {
		fmt.Fprint(deps.Stdout, " (stopped early)")
	}
	fmt.Fprintln(deps.Stdout)

	switch {
	case result.Skipped:
		fmt.Fprintln(deps.Stdout, "No records saved")
		return
	case result.FileErr != nil:
		fmt.Fprintf(deps.Stderr, "error writing file: %v\n", result.FileErr)
	default:
		fmt.Fprintln(deps.Stdout, "Saved JSON file")
	}

	switch {
	case result.StoreSkipped:
	case result.StoreErr != nil:
		fmt.Fprintf(deps.Stderr, "error saving to document store: %v\n", result.StoreErr)
	default:
		fmt.Fprintln(deps.Stdout, "Replaced document store records")
	}
}
