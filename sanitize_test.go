package newscrawl_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/newsspeech/newscrawl"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, newscrawl.Sanitize(""))
	})

	t.Run("removes login prompt and everything after it", func(t *testing.T) {
		t.Parallel()

		got := newscrawl.Sanitize("Giá xăng giảm mạnh trong tuần này. Hãy đăng nhập để bình chọn")

		assert.Equal(t, "Giá xăng giảm mạnh trong tuần này.", got)
	})

	t.Run("removes comment section header case-insensitively", func(t *testing.T) {
		t.Parallel()

		got := newscrawl.Sanitize("Nội dung chính của bài.\nBÌNH LUẬN\nÝ kiến độc giả")

		assert.Equal(t, "Nội dung chính của bài.", got)
	})

	t.Run("removes copyright footer", func(t *testing.T) {
		t.Parallel()

		got := newscrawl.Sanitize("Tin tức trong ngày © Bản quyền 2024 thuộc về báo")

		assert.Equal(t, "Tin tức trong ngày thuộc về báo", got)
	})

	t.Run("removes raw URLs", func(t *testing.T) {
		t.Parallel()

		got := newscrawl.Sanitize("Chi tiết tại https://vnexpress.net/abc-123.html ngay hôm nay")

		assert.Equal(t, "Chi tiết tại ngay hôm nay", got)
	})

	t.Run("removes read more trailer", func(t *testing.T) {
		t.Parallel()

		got := newscrawl.Sanitize("Đội tuyển thắng đậm. Xem thêm: các trận đấu khác")

		assert.Equal(t, "Đội tuyển thắng đậm.", got)
	})

	t.Run("collapses whitespace including non-breaking spaces", func(t *testing.T) {
		t.Parallel()

		got := newscrawl.Sanitize("  Hà\u00a0Nội \n\n\t mưa   lớn  ")

		assert.Equal(t, "Hà Nội mưa lớn", got)
	})

	t.Run("truncates to the maximum length with ellipsis", func(t *testing.T) {
		t.Parallel()

		got := newscrawl.Sanitize(strings.Repeat("ă", 600))

		assert.Equal(t, newscrawl.MaxContentLength+len(newscrawl.Ellipsis), utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, newscrawl.Ellipsis))
	})

	t.Run("does not truncate text at the maximum length", func(t *testing.T) {
		t.Parallel()

		in := strings.Repeat("a", newscrawl.MaxContentLength)

		assert.Equal(t, in, newscrawl.Sanitize(in))
	})
}

func TestSanitize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Bài viết ngắn",
		"Hãy https://x.vn đăng nhập để tiếp tục",
		"bình https://x.vn luận",
		"Xem thêm tin khác",
		"Tin © không có năm",
		strings.Repeat("Thời sự hôm nay ", 80),
		strings.Repeat("x ", 300) + "Xem thêm",
	}

	for _, in := range inputs {
		once := newscrawl.Sanitize(in)
		assert.Equal(t, once, newscrawl.Sanitize(once), "input %q", in)
	}
}

func TestSanitize_Bounded(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 10, 499, 500, 501, 2000} {
		got := newscrawl.Sanitize(strings.Repeat("đ", n))
		assert.LessOrEqual(t, utf8.RuneCountInString(got), newscrawl.MaxContentLength+len(newscrawl.Ellipsis))
	}
}

func TestEnsureMinContent(t *testing.T) {
	t.Parallel()

	t.Run("substitutes placeholder below minimum length", func(t *testing.T) {
		t.Parallel()

		got := newscrawl.EnsureMinContent(strings.Repeat("a", newscrawl.MinContentLength-1), newscrawl.PlaceholderFeedContent)

		assert.Equal(t, newscrawl.PlaceholderFeedContent, got)
	})

	t.Run("keeps text at minimum length", func(t *testing.T) {
		t.Parallel()

		in := strings.Repeat("ơ", newscrawl.MinContentLength)

		assert.Equal(t, in, newscrawl.EnsureMinContent(in, newscrawl.PlaceholderFeedContent))
	})
}
