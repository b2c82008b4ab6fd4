package crawl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/newsspeech/newscrawl"
)

// ProgressEvent reports the outcome of one category.
type ProgressEvent struct {
	Source    newscrawl.Source
	Category  string
	Records   int
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called after each category.
type ProgressFunc func(ProgressEvent)

// Report summarizes a run.
type Report struct {
	Records  []*newscrawl.NewsRecord
	Elapsed  time.Duration
	Failures int

	// Cancelled is set when the run context ended before every category ran.
	Cancelled bool
}

// Coordinator runs the feed categories, then the forum categories, one at a
// time and concatenates their records in configuration order.
type Coordinator struct {
	Feed  newscrawl.FeedIngester
	Forum newscrawl.ForumIngester

	Logger   *slog.Logger
	Progress ProgressFunc
	Now      func() time.Time
}

type categoryJob struct {
	source   newscrawl.Source
	category string
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func (c *Coordinator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Run ingests every configured category. Category errors are logged and
// counted, never returned. ctx is checked between categories; a category
// in flight runs to completion. Only an invalid configuration is an error.
func (c *Coordinator) Run(ctx context.Context, cfg newscrawl.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := c.now()
	logger := c.logger()

	jobs := make([]categoryJob, 0, len(cfg.FeedCategories)+len(cfg.ForumCategories))
	for _, category := range cfg.FeedCategories {
		jobs = append(jobs, categoryJob{newscrawl.SourceFeed, category})
	}
	for _, category := range cfg.ForumCategories {
		jobs = append(jobs, categoryJob{newscrawl.SourceForum, category})
	}

	report := &Report{Records: []*newscrawl.NewsRecord{}}
	for n, job := range jobs {
		if err := ctx.Err(); err != nil {
			logger.Warn("run stopped", "remaining", len(jobs)-n, "err", err)
			report.Cancelled = true
			break
		}

		records, err := c.ingest(context.WithoutCancel(ctx), job, cfg)
		if err != nil {
			report.Failures++
			logger.Error("category failed", "source", job.source, "category", job.category, "err", err)
		} else {
			logger.Info("category done", "source", job.source, "category", job.category, "records", len(records))
		}
		report.Records = append(report.Records, records...)

		if c.Progress != nil {
			c.Progress(ProgressEvent{
				Source:    job.source,
				Category:  job.category,
				Records:   len(records),
				Completed: n + 1,
				Total:     len(jobs),
				Error:     err,
			})
		}
	}

	report.Elapsed = c.now().Sub(start)
	return report, nil
}

func (c *Coordinator) ingest(ctx context.Context, job categoryJob, cfg newscrawl.Config) ([]*newscrawl.NewsRecord, error) {
	switch job.source {
	case newscrawl.SourceFeed:
		if c.Feed == nil {
			return nil, newscrawl.Errorf(newscrawl.EINVALID, "no feed ingester configured")
		}
		return c.Feed.IngestFeed(ctx, job.category, cfg.FeedLimitPerCategory)
	default:
		if c.Forum == nil {
			return nil, newscrawl.Errorf(newscrawl.EINVALID, "no forum ingester configured")
		}
		return c.Forum.IngestForum(ctx, job.category, cfg.ForumLimitPerCategory, cfg.Headless)
	}
}
