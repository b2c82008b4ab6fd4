//go:build integration

package rod_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forumServer serves two listing pages linked by a next button, and a page
// reporting the browser's automation markers.
func forumServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/forums/a/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="structItem-title"><a href="/threads/mot.1/">Một</a></div>
<a class="pageNav-jump pageNav-jump--next" href="/forums/a/page-2">Tiếp</a></body></html>`)
	})
	mux.HandleFunc("/forums/a/page-2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="structItem-title"><a href="/threads/hai.2/">Hai</a></div></body></html>`)
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><p id="ua">%s</p>
<p id="wd"></p><script>document.getElementById('wd').textContent = String(navigator.webdriver)</script></body></html>`, r.UserAgent())
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func launch(t *testing.T, ctx context.Context) newscrawl.BrowserSession {
	t.Helper()

	session, err := rod.NewLauncher().Launch(ctx, newscrawl.SessionOptions{Headless: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Quit() })
	return session
}

func TestSession_Integration_Pagination(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	server := forumServer(t)
	session := launch(t, ctx)

	require.NoError(t, session.Navigate(ctx, server.URL+"/forums/a/"))
	html, err := session.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "/threads/mot.1/")

	require.NoError(t, session.Click(ctx, "a.pageNav-jump--next"))
	html, err = session.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "/threads/hai.2/")

	err = session.Click(ctx, "a.pageNav-jump--next")
	assert.Equal(t, newscrawl.ENOTFOUND, newscrawl.ErrorCode(err))
}

func TestSession_Integration_NavigateTimesOut(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	session, err := rod.NewLauncher(rod.WithNavigateTimeout(2*time.Second)).Launch(context.Background(), newscrawl.SessionOptions{Headless: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Quit() })

	// A context without deadline or cancel, as the coordinator passes.
	ctx := context.WithoutCancel(context.Background())

	start := time.Now()
	err = session.Navigate(ctx, server.URL+"/stalled")

	require.Error(t, err)
	assert.Equal(t, newscrawl.EFETCH, newscrawl.ErrorCode(err))
	assert.Less(t, time.Since(start), 20*time.Second)
}

func TestSession_Integration_Tabs(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	server := forumServer(t)
	session := launch(t, ctx)
	listing := session.CurrentTab()
	require.NotEmpty(t, listing)
	require.Equal(t, 1, session.Tabs())

	require.NoError(t, session.Navigate(ctx, server.URL+"/forums/a/"))

	detail, err := session.OpenTab(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, listing, detail)
	assert.Equal(t, detail, session.CurrentTab())
	assert.Equal(t, 2, session.Tabs())

	require.NoError(t, session.Navigate(ctx, server.URL+"/forums/a/page-2"))
	require.NoError(t, session.CloseTab(detail))
	require.NoError(t, session.SwitchTab(listing))
	assert.Equal(t, 1, session.Tabs())

	// The listing tab kept its page.
	html, err := session.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "/threads/mot.1/")

	assert.Equal(t, newscrawl.ENOTFOUND, newscrawl.ErrorCode(session.SwitchTab(detail)))
}

func TestSession_Integration_MasksAutomation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	server := forumServer(t)
	session := launch(t, ctx)

	require.NoError(t, session.Navigate(ctx, server.URL+"/ua"))
	html, err := session.HTML(ctx)
	require.NoError(t, err)

	assert.Contains(t, html, rod.DefaultUserAgent)
	assert.Contains(t, html, `<p id="wd">undefined</p>`)
}

func TestSession_Integration_QuitIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	session := launch(t, ctx)

	require.NoError(t, session.Quit())
	require.NoError(t, session.Quit())
	assert.Zero(t, session.Tabs())
	assert.Equal(t, newscrawl.ESESSION, newscrawl.ErrorCode(session.Navigate(ctx, "about:blank")))
}
