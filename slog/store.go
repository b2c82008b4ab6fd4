package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/newsspeech/newscrawl"
)

// Ensure LoggingStore implements newscrawl.RecordStore.
var _ newscrawl.RecordStore = (*LoggingStore)(nil)

// LoggingStore wraps a RecordStore with logging.
type LoggingStore struct {
	next   newscrawl.RecordStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next newscrawl.RecordStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

func (s *LoggingStore) ReplaceRecords(ctx context.Context, records []*newscrawl.NewsRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace records",
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceRecords(ctx, records)
}

func (s *LoggingStore) FindRecords(ctx context.Context, filter newscrawl.RecordFilter) (records []*newscrawl.NewsRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find records",
			"records", len(records),
			"limit", filter.Limit,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

func (s *LoggingStore) Close() error {
	return s.next.Close()
}
