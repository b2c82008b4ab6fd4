package newscrawl

import "context"

// Fetcher retrieves the body of a URL over HTTP.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// Network errors, timeouts and non-200 responses return EFETCH.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)
}
