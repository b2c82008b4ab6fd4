// Package crawl orchestrates an ingestion run: the feed and forum
// ingesters, the coordinator that runs them category by category, and the
// sink that persists the result.
package crawl

import (
	"context"
	"time"
)

// sleep waits for d or until ctx is done. Non-positive durations return
// immediately.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
