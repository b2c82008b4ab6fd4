package newscrawl

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Content bounds applied to feed summaries.
const (
	MaxContentLength = 500
	MinContentLength = 30
	Ellipsis         = "..."
)

// PlaceholderFeedContent replaces feed content shorter than MinContentLength.
const PlaceholderFeedContent = "Xem chi tiết tại VnExpress."

// boilerplatePatterns are removed in order. All are case-insensitive and
// may span newlines.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)Hãy\s*đăng\s*nhập.*`),
	regexp.MustCompile(`(?is)tài\s*khoản\s*để\s*gửi`),
	regexp.MustCompile(`(?is)tạo\s*tài\s*khoản`),
	regexp.MustCompile(`(?is)bình\s*luận.*`),
	regexp.MustCompile(`(?is)©.*?\d{4}`),
	regexp.MustCompile(`(?is)Xem\s*thêm.*`),
	regexp.MustCompile(`(?is)https?://\S+`),
}

var whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)

// Sanitize strips login prompts, comment headers, copyright footers,
// "read more" trailers and raw URLs from text, collapses whitespace, and
// truncates the result to MaxContentLength runes followed by Ellipsis.
//
// Removal repeats until no pattern matches, so Sanitize(Sanitize(x)) ==
// Sanitize(x).
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	text = whitespaceRe.ReplaceAllString(text, " ")
	for {
		before := text
		for _, re := range boilerplatePatterns {
			text = re.ReplaceAllString(text, "")
		}
		if text == before {
			break
		}
	}

	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	return truncate(text, MaxContentLength)
}

// EnsureMinContent returns placeholder when text is shorter than
// MinContentLength runes.
func EnsureMinContent(text, placeholder string) string {
	if utf8.RuneCountInString(text) < MinContentLength {
		return placeholder
	}
	return text
}

func truncate(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + Ellipsis
}
