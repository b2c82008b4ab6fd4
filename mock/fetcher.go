package mock

import (
	"context"

	"github.com/newsspeech/newscrawl"
)

var _ newscrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newscrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
