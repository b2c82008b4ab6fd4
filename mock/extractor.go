package mock

import "github.com/newsspeech/newscrawl"

var _ newscrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newscrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*newscrawl.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*newscrawl.ExtractResult, error) {
	return e.ExtractFn(html)
}
