package goquery_test

import (
	"testing"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPost(t *testing.T) {
	t.Parallel()

	threadURL := "https://www.otofun.net/threads/xe-dien-moi.100/"

	t.Run("extracts the first post text and editor image", func(t *testing.T) {
		t.Parallel()

		html := `<article class="message message--post">
<div class="bbWrapper">
	Dòng một<br>
	<img class="smilie" src="/styles/smilies/cuoi.png" alt=":)">
	<a href="https://example.com">link</a>
	Dòng hai
	<img src="/data/khac.jpg">
	<img class="bbImage" src="/attachments/xe.jpg">
</div>
</article>
<article class="message message--post">
<div class="bbWrapper">Trả lời</div>
</article>`

		post, err := goquery.ExtractPost(html, threadURL, goquery.PostSelectors)

		require.NoError(t, err)
		assert.Equal(t, "Dòng một\nDòng hai", post.Text)
		assert.Equal(t, "https://www.otofun.net/attachments/xe.jpg", post.Image)
	})

	t.Run("drops noscript image fallbacks from the text", func(t *testing.T) {
		t.Parallel()

		html := `<div class="bbWrapper">Xe chạy tốt.<br>
	<img class="bbImage" src="data:image/gif;base64,R0lGOD" data-src="/data/a.jpg">
	<noscript><img src="/data/a.jpg" class="bbImage"></noscript>
</div>`

		post, err := goquery.ExtractPost(html, threadURL, goquery.PostSelectors)

		require.NoError(t, err)
		assert.Equal(t, "Xe chạy tốt.", post.Text)
		assert.NotContains(t, post.Text, "<img")
	})

	t.Run("falls back to the first non-decorative image", func(t *testing.T) {
		t.Parallel()

		html := `<div class="bbWrapper">
	<img class="smilie" src="https://www.otofun.net/styles/smilies/a.gif">
	<img src="data:image/gif;base64,R0lGOD">
	<img src="/styles/default/xenforo/logo.png">
	<img src="https://img.example.com/thuc.jpg">
	Nội dung
</div>`

		post, err := goquery.ExtractPost(html, threadURL, goquery.PostSelectors)

		require.NoError(t, err)
		assert.Equal(t, "Nội dung", post.Text)
		assert.Equal(t, "https://img.example.com/thuc.jpg", post.Image)
	})

	t.Run("leaves image empty without usable images", func(t *testing.T) {
		t.Parallel()

		html := `<div class="bbWrapper">Chỉ chữ</div>`

		post, err := goquery.ExtractPost(html, threadURL, goquery.PostSelectors)

		require.NoError(t, err)
		assert.Empty(t, post.Image)
	})

	t.Run("falls back to message body articles", func(t *testing.T) {
		t.Parallel()

		html := `<article class="message-body js-selectToQuote">Bố cục cũ</article>`

		post, err := goquery.ExtractPost(html, threadURL, goquery.PostSelectors)

		require.NoError(t, err)
		assert.Equal(t, "Bố cục cũ", post.Text)
	})

	t.Run("returns not found without a post body", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractPost(`<div class="p-body">Đăng nhập</div>`, threadURL, goquery.PostSelectors)

		assert.Equal(t, newscrawl.ENOTFOUND, newscrawl.ErrorCode(err))
	})
}
