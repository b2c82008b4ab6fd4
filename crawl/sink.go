package crawl

import (
	"context"
	"io"
	"log/slog"

	"github.com/newsspeech/newscrawl"
)

// Sink persists a run to the JSON file and, when one is reachable, the
// document store. The two writes are independent.
type Sink struct {
	File newscrawl.RecordWriter

	// Store is nil when the connectivity check failed; the run is then
	// file-only.
	Store newscrawl.RecordStore

	Logger *slog.Logger
}

// PersistResult reports which writes succeeded.
type PersistResult struct {
	Skipped  bool
	FileErr  error
	StoreErr error

	// StoreSkipped is set when no store is configured.
	StoreSkipped bool
}

// OK reports whether every attempted write succeeded.
func (r PersistResult) OK() bool {
	return r.FileErr == nil && r.StoreErr == nil
}

func (s *Sink) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// Persist replaces the contents of both sinks with records. An empty batch
// leaves both untouched. A failure on one path does not prevent the other.
func (s *Sink) Persist(ctx context.Context, records []*newscrawl.NewsRecord) PersistResult {
	logger := s.logger()

	if len(records) == 0 {
		logger.Warn("no records collected, keeping previous output")
		return PersistResult{Skipped: true, StoreSkipped: true}
	}

	var result PersistResult
	if err := s.File.WriteRecords(ctx, records); err != nil {
		result.FileErr = err
		logger.Error("write file", "records", len(records), "err", err)
	} else {
		logger.Info("wrote file", "records", len(records))
	}

	if s.Store == nil {
		result.StoreSkipped = true
		logger.Info("no document store, file only")
		return result
	}
	if err := s.Store.ReplaceRecords(ctx, records); err != nil {
		result.StoreErr = err
		logger.Error("replace store records", "records", len(records), "err", err)
	} else {
		logger.Info("replaced store records", "records", len(records))
	}

	return result
}
