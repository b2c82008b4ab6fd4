// Package readability implements newscrawl.Extractor with go-readability,
// the last generic strategy for article pages whose layout is unknown.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/newsspeech/newscrawl"
)

// Ensure Extractor implements newscrawl.Extractor at compile time.
var _ newscrawl.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable article of rawHTML. Empty input returns
// EINVALID, and a page without a readable article returns ENOTFOUND.
func (e *Extractor) Extract(rawHTML string) (*newscrawl.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newscrawl.Errorf(newscrawl.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.EPARSE, "readability: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, newscrawl.Errorf(newscrawl.ENOTFOUND, "no readable content")
	}

	return &newscrawl.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
