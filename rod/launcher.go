// Package rod implements the newscrawl browser capability with go-rod,
// driving a local Chrome or Chromium.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/newsspeech/newscrawl"
)

// DefaultUserAgent is presented by sessions that do not set one.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// acceptLanguage is sent alongside the user agent override.
const acceptLanguage = "vi-VN,vi;q=0.9,en;q=0.8"

// maskWebdriver runs before any page script so navigator.webdriver reads
// as undefined.
const maskWebdriver = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// Ensure Launcher implements newscrawl.BrowserLauncher at compile time.
var _ newscrawl.BrowserLauncher = (*Launcher)(nil)

// FindBrowser returns the path of a locally installed Chrome or Chromium.
// Returns ESESSION when none is installed.
func FindBrowser() (string, error) {
	path, ok := launcher.LookPath()
	if !ok {
		return "", newscrawl.Errorf(newscrawl.ESESSION, "no Chrome or Chromium binary found")
	}
	return path, nil
}

// Launcher starts isolated browser processes, one per session.
type Launcher struct {
	bin             string
	navigateTimeout time.Duration
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithBin sets the browser binary. Without it the launcher looks the
// binary up on the system.
func WithBin(path string) LauncherOption {
	return func(l *Launcher) {
		l.bin = path
	}
}

// WithNavigateTimeout bounds each Navigate and HTML call of the sessions
// the launcher starts. Defaults to NavigateTimeout.
func WithNavigateTimeout(d time.Duration) LauncherOption {
	return func(l *Launcher) {
		l.navigateTimeout = d
	}
}

// NewLauncher creates a new Launcher.
func NewLauncher(opts ...LauncherOption) *Launcher {
	l := &Launcher{navigateTimeout: NavigateTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts a browser with automation markers removed and returns a
// session with one focused tab. Failures return ESESSION.
func (l *Launcher) Launch(ctx context.Context, opts newscrawl.SessionOptions) (newscrawl.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lnchr := launcher.New().
		Headless(opts.Headless).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled").
		Delete("enable-automation").
		Leakless(true)
	if l.bin != "" {
		lnchr = lnchr.Bin(l.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.ESESSION, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, newscrawl.Errorf(newscrawl.ESESSION, "connecting to browser: %v", err)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	s := &Session{
		browser:         browser,
		launcher:        lnchr,
		userAgent:       ua,
		navigateTimeout: l.navigateTimeout,
		pages:           make(map[newscrawl.TabHandle]*rod.Page),
	}
	if _, err := s.OpenTab(ctx); err != nil {
		_ = s.Quit()
		return nil, newscrawl.Errorf(newscrawl.ESESSION, "opening first tab: %v", err)
	}
	return s, nil
}

// preparePage applies the user agent override and webdriver mask to a
// newly created page.
func preparePage(page *rod.Page, userAgent string) error {
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      userAgent,
		AcceptLanguage: acceptLanguage,
	}); err != nil {
		return err
	}
	_, err := page.EvalOnNewDocument(maskWebdriver)
	return err
}
