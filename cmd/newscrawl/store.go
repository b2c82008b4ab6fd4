package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/mongo"
	newsslog "github.com/newsspeech/newscrawl/slog"
	"github.com/newsspeech/newscrawl/sqlite"
)

// sqlitePrefix selects the sqlite store: "sqlite:<path>".
const sqlitePrefix = "sqlite:"

// openStore connects the document store named by cfg. It returns a nil
// store, not an error, when none is configured or the connectivity check
// fails; the run is then file-only. Only an unrecognized connection string
// is an error.
func openStore(ctx context.Context, cfg newscrawl.Config, runID string, logger *slog.Logger) (newscrawl.RecordStore, error) {
	conn := strings.TrimSpace(cfg.StoreConnectionString)

	var store newscrawl.RecordStore
	switch {
	case conn == "":
		logger.Info("no document store configured, file only")
		return nil, nil

	case strings.HasPrefix(conn, "mongodb://"), strings.HasPrefix(conn, "mongodb+srv://"):
		s, err := mongo.Open(ctx, conn, cfg.StoreDatabase, cfg.StoreCollection, cfg.StoreConnectTimeout)
		if err != nil {
			logger.Warn("document store unavailable, file only", "err", err)
			return nil, nil
		}
		store = s

	case strings.HasPrefix(conn, sqlitePrefix):
		db := sqlite.NewDB(strings.TrimPrefix(conn, sqlitePrefix))
		if err := db.Open(); err != nil {
			logger.Warn("document store unavailable, file only", "err", err)
			return nil, nil
		}
		store = sqlite.NewStore(db, runID)

	default:
		return nil, newscrawl.Errorf(newscrawl.EINVALID, "unsupported store connection string %q", conn)
	}

	return newsslog.NewLoggingStore(store, logger), nil
}

// closeStore closes store if one is open.
func closeStore(store newscrawl.RecordStore, logger *slog.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("close document store", "err", err)
	}
}
