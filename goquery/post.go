package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/newsspeech/newscrawl"
)

// PostSelectors locate the first post body of a thread page, in the order
// they are tried.
var PostSelectors = []string{
	"article.message--post div.bbWrapper",
	"div.bbWrapper",
	"article[class*='message-body']",
}

// PostImageSelector matches images embedded by the forum's editor. They are
// preferred over any other image in the post.
const PostImageSelector = "img.bbImage"

// Post is the opening post of a thread.
type Post struct {
	Text  string
	Image string
}

// ExtractPost returns the text and representative image of the first post
// body matched by selectors. Text nodes are joined with newlines. The image
// is the first editor image, else the first non-decorative image, resolved
// against baseURL. Returns ENOTFOUND when no selector matches.
func ExtractPost(rawHTML, baseURL string, selectors []string) (*Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.EPARSE, "parse post page: %v", err)
	}

	var body *goquery.Selection
	for _, sel := range selectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			body = s
			break
		}
	}
	if body == nil {
		return nil, newscrawl.Errorf(newscrawl.ENOTFOUND, "post body not found")
	}

	base := parseBase(baseURL)
	image := firstImage(body.Find(PostImageSelector), base, true)
	if image == "" {
		image = firstImage(body.Find("img"), base, true)
	}

	// Images are read before SelectionText removes them.
	return &Post{
		Text:  SelectionText(body, NewlineSeparator),
		Image: image,
	}, nil
}
