package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// imageSourceAttrs are read in order; lazy-loaded images keep the real
// source in a data attribute.
var imageSourceAttrs = []string{"src", "data-src", "data-url"}

// FirstImage returns the source of the first <img> in rawHTML resolved
// against baseURL, or "" when there is none. With an empty baseURL only
// absolute sources are returned.
func FirstImage(rawHTML, baseURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	return firstImage(doc.Find("img"), parseBase(baseURL), false)
}

// firstImage returns the first resolvable image source in imgs. With
// skipDecorative set, smilies and theme assets are passed over.
func firstImage(imgs *goquery.Selection, base *url.URL, skipDecorative bool) string {
	var found string
	imgs.EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if skipDecorative && isDecorative(img) {
			return true
		}
		for _, attr := range imageSourceAttrs {
			src, ok := img.Attr(attr)
			if !ok {
				continue
			}
			if skipDecorative && isDecorativeSource(src) {
				break
			}
			if u := resolveHref(base, src); u != "" {
				found = u
				return false
			}
		}
		return true
	})
	return found
}

func isDecorative(img *goquery.Selection) bool {
	class, _ := img.Attr("class")
	return strings.Contains(strings.ToLower(class), "smilie")
}

func isDecorativeSource(src string) bool {
	src = strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(src, "data:") ||
		strings.Contains(src, "/styles/") ||
		strings.Contains(src, "smilies")
}
