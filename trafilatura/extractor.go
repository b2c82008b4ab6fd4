// Package trafilatura implements newscrawl.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/newsspeech/newscrawl"
	"golang.org/x/net/html"
)

// Ensure Extractor implements newscrawl.Extractor at compile time.
var _ newscrawl.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Comments below articles are
// excluded; the fallback extractors are enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the main content of rawHTML. Empty input returns
// EINVALID, and a page without a main content node returns ENOTFOUND.
func (e *Extractor) Extract(rawHTML string) (*newscrawl.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newscrawl.Errorf(newscrawl.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.EPARSE, "trafilatura: %v", err)
	}
	if result.ContentNode == nil {
		return nil, newscrawl.Errorf(newscrawl.ENOTFOUND, "no main content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &newscrawl.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
