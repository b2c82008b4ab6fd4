package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ThreadSelector locates thread links on a forum listing page. When Item is
// set, Link is matched inside each Item element; otherwise Link is matched
// against the whole page.
type ThreadSelector struct {
	Item string
	Link string
}

// ThreadSelectors are the listing layouts of the forum, in the order they
// are tried. The first one yielding any thread wins.
var ThreadSelectors = []ThreadSelector{
	{Item: "div.structItem-title", Link: "a[href*='/threads/']"},
	{Link: "a[href*='/threads/']"},
	{Link: "h3[class*='title'] a"},
}

// Thread is a discussion thread found on a listing page.
type Thread struct {
	Title string
	Link  string
}

// ExtractThreads returns the threads of a listing page in document order.
// Links are resolved against baseURL and deduplicated; links without a
// title are skipped.
func ExtractThreads(rawHTML, baseURL string, selectors []ThreadSelector) []Thread {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}
	base := parseBase(baseURL)

	for _, s := range selectors {
		var links *goquery.Selection
		if s.Item != "" {
			links = doc.Find(s.Item).Find(s.Link)
		} else {
			links = doc.Find(s.Link)
		}

		seen := make(map[string]bool)
		var threads []Thread
		links.Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			link := resolveHref(base, href)
			title := strings.Join(strings.Fields(a.Text()), " ")
			if link == "" || title == "" || seen[link] {
				return
			}
			seen[link] = true
			threads = append(threads, Thread{Title: title, Link: link})
		})
		if len(threads) > 0 {
			return threads
		}
	}
	return nil
}
