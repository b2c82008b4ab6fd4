package goquery_test

import (
	"testing"

	"github.com/newsspeech/newscrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forumBase = "https://www.otofun.net"

func TestExtractThreads(t *testing.T) {
	t.Parallel()

	t.Run("extracts threads from struct items in order", func(t *testing.T) {
		t.Parallel()

		html := `<div class="structItemContainer">
<div class="structItem-title">
	<a href="/prefixes/hoi-dap">Hỏi đáp</a>
	<a href="/threads/xe-dien-moi.100/">Xe điện   mới</a>
</div>
<div class="structItem-title">
	<a href="/threads/bao-duong.200/">Bảo dưỡng</a>
</div>
<div class="structItem-title">
	<a href="/threads/xe-dien-moi.100/#post-5">Xe điện mới</a>
</div>
</div>
<aside><a href="/threads/sidebar.300/">Sidebar</a></aside>`

		threads := goquery.ExtractThreads(html, forumBase, goquery.ThreadSelectors)

		require.Len(t, threads, 2)
		assert.Equal(t, goquery.Thread{Title: "Xe điện mới", Link: "https://www.otofun.net/threads/xe-dien-moi.100/"}, threads[0])
		assert.Equal(t, goquery.Thread{Title: "Bảo dưỡng", Link: "https://www.otofun.net/threads/bao-duong.200/"}, threads[1])
	})

	t.Run("falls back to any thread link", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<li><a href="https://www.otofun.net/threads/a.1/">A</a></li>
<li><a href="/threads/b.2/">B</a></li>
<li><a href="/members/c.3/">C</a></li>
</ul>`

		threads := goquery.ExtractThreads(html, forumBase, goquery.ThreadSelectors)

		require.Len(t, threads, 2)
		assert.Equal(t, "https://www.otofun.net/threads/a.1/", threads[0].Link)
		assert.Equal(t, "https://www.otofun.net/threads/b.2/", threads[1].Link)
	})

	t.Run("falls back to title headings", func(t *testing.T) {
		t.Parallel()

		html := `<h3 class="thread-title"><a href="/t/mot.9">Một</a></h3>`

		threads := goquery.ExtractThreads(html, forumBase, goquery.ThreadSelectors)

		require.Len(t, threads, 1)
		assert.Equal(t, "https://www.otofun.net/t/mot.9", threads[0].Link)
	})

	t.Run("skips links without title or with non-http scheme", func(t *testing.T) {
		t.Parallel()

		html := `<div class="structItem-title">
	<a href="/threads/empty.1/"> </a>
	<a href="javascript:void(0)/threads/">JS</a>
	<a href="/threads/ok.2/">OK</a>
</div>`

		threads := goquery.ExtractThreads(html, forumBase, goquery.ThreadSelectors)

		require.Len(t, threads, 1)
		assert.Equal(t, "OK", threads[0].Title)
	})

	t.Run("returns nil for a page without threads", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.ExtractThreads(`<p>Trống</p>`, forumBase, goquery.ThreadSelectors))
	})
}
