package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ContentSelector locates an article body: the first element matching Block
// is the container and the elements matching Paragraph inside it are the
// body paragraphs.
type ContentSelector struct {
	Block     string
	Paragraph string
}

// ParagraphSeparator joins body paragraphs.
const ParagraphSeparator = "\n\n"

// ArticleSelectors are the body layouts of the news portal, in the order
// they are tried.
var ArticleSelectors = []ContentSelector{
	{Block: "article.fck_detail", Paragraph: "p.Normal"},
	{Block: "div.fck_detail", Paragraph: "p.Normal"},
}

// ExtractBody returns the body paragraphs of the first selector whose block
// is present and has non-empty paragraphs, joined by ParagraphSeparator.
// Returns "" when no selector matches.
func ExtractBody(rawHTML string, selectors []ContentSelector) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	for _, s := range selectors {
		block := doc.Find(s.Block).First()
		if block.Length() == 0 {
			continue
		}
		var paragraphs []string
		block.Find(s.Paragraph).Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, ParagraphSeparator)
		}
	}
	return ""
}

// MetaDescription returns the trimmed content of the page's
// <meta name="description"> tag, or "" when absent.
func MetaDescription(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	content, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(content)
}
