// Package goquery implements HTML text, image and content-block extraction
// on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Separators used when joining text nodes.
const (
	SpaceSeparator   = " "
	NewlineSeparator = "\n"
)

// strippedElements are removed with their descendants before text is
// collected, so their text never reaches the output. The parser keeps
// noscript content as one raw text node, markup included.
const strippedElements = "script, style, noscript, a, img"

// ExtractText parses rawHTML, drops script, style, noscript, anchor and
// image elements, and joins the remaining trimmed, non-empty text nodes with sep.
// Malformed markup degrades to best-effort text; empty input yields "".
func ExtractText(rawHTML, sep string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	return SelectionText(doc.Selection, sep)
}

// SelectionText is like ExtractText for an already parsed selection.
// The stripped elements are removed from the underlying document.
func SelectionText(sel *goquery.Selection, sep string) string {
	sel.Find(strippedElements).Remove()

	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	}
	if n.Type == html.ElementNode && isStripped(n.Data) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// isStripped catches elements the parser placed outside the selection
// that Remove operated on, such as a script inside a root-level fragment.
func isStripped(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "a", "img":
		return true
	}
	return false
}
