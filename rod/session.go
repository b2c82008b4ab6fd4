package rod

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/newsspeech/newscrawl"
)

// Ensure Session implements newscrawl.BrowserSession at compile time.
var _ newscrawl.BrowserSession = (*Session)(nil)

// Session is one browser process. Each tab is a rod page keyed by its
// target ID. A Session is not safe for concurrent use.
type Session struct {
	browser         *rod.Browser
	launcher        *launcher.Launcher
	userAgent       string
	navigateTimeout time.Duration

	pages   map[newscrawl.TabHandle]*rod.Page
	current newscrawl.TabHandle
	closed  bool
}

func (s *Session) focused() (*rod.Page, error) {
	if s.closed {
		return nil, newscrawl.Errorf(newscrawl.ESESSION, "session closed")
	}
	page, ok := s.pages[s.current]
	if !ok {
		return nil, newscrawl.Errorf(newscrawl.ESESSION, "no tab focused")
	}
	return page, nil
}

// NavigateTimeout bounds a page load and an HTML read.
const NavigateTimeout = 30 * time.Second

// withNavigateTimeout derives the deadline of one Navigate or HTML call.
// Callers may pass a context detached from cancellation, so the bound is
// applied here.
func (s *Session) withNavigateTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.navigateTimeout <= 0 {
		return context.WithTimeout(ctx, NavigateTimeout)
	}
	return context.WithTimeout(ctx, s.navigateTimeout)
}

// Navigate loads url in the focused tab and waits, at most the navigate
// timeout, for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page, err := s.focused()
	if err != nil {
		return err
	}
	ctx, cancel := s.withNavigateTimeout(ctx)
	defer cancel()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return newscrawl.Errorf(newscrawl.EFETCH, "navigate %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return newscrawl.Errorf(newscrawl.EFETCH, "load %s: %v", url, err)
	}
	return nil
}

// HTML returns the rendered HTML of the focused tab.
func (s *Session) HTML(ctx context.Context) (string, error) {
	page, err := s.focused()
	if err != nil {
		return "", err
	}
	ctx, cancel := s.withNavigateTimeout(ctx)
	defer cancel()
	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", newscrawl.Errorf(newscrawl.EFETCH, "read html: %v", err)
	}
	return html, nil
}

// ClickNavigationTimeout bounds the wait for the page a click loads.
const ClickNavigationTimeout = 30 * time.Second

// Click clicks the first element matching selector and waits, at most
// ClickNavigationTimeout, for the navigation it triggers to load.
func (s *Session) Click(ctx context.Context, selector string) error {
	page, err := s.focused()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, ClickNavigationTimeout)
	defer cancel()
	page = page.Context(ctx)

	has, el, err := page.Has(selector)
	if err != nil {
		return newscrawl.Errorf(newscrawl.EFETCH, "find %s: %v", selector, err)
	}
	if !has {
		return newscrawl.Errorf(newscrawl.ENOTFOUND, "no element matches %s", selector)
	}

	wait := page.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return newscrawl.Errorf(newscrawl.EFETCH, "click %s: %v", selector, err)
	}
	wait()
	return nil
}

// CurrentTab returns the focused tab, or "" when none is focused.
func (s *Session) CurrentTab() newscrawl.TabHandle {
	return s.current
}

// OpenTab creates a blank tab and focuses it.
func (s *Session) OpenTab(ctx context.Context) (newscrawl.TabHandle, error) {
	if s.closed {
		return "", newscrawl.Errorf(newscrawl.ESESSION, "session closed")
	}

	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", newscrawl.Errorf(newscrawl.ESESSION, "create tab: %v", err)
	}
	// Drop the call context so later operations take their own.
	page = page.Context(context.Background())

	if err := preparePage(page, s.userAgent); err != nil {
		_ = page.Close()
		return "", newscrawl.Errorf(newscrawl.ESESSION, "prepare tab: %v", err)
	}

	handle := newscrawl.TabHandle(page.TargetID)
	s.pages[handle] = page
	s.current = handle
	return handle, nil
}

// SwitchTab focuses an open tab. Returns ENOTFOUND for unknown handles.
func (s *Session) SwitchTab(handle newscrawl.TabHandle) error {
	page, ok := s.pages[handle]
	if !ok {
		return newscrawl.Errorf(newscrawl.ENOTFOUND, "tab %s not open", handle)
	}
	if _, err := page.Activate(); err != nil {
		return newscrawl.Errorf(newscrawl.ESESSION, "activate tab: %v", err)
	}
	s.current = handle
	return nil
}

// CloseTab closes an open tab. Returns ENOTFOUND for unknown handles.
func (s *Session) CloseTab(handle newscrawl.TabHandle) error {
	page, ok := s.pages[handle]
	if !ok {
		return newscrawl.Errorf(newscrawl.ENOTFOUND, "tab %s not open", handle)
	}
	delete(s.pages, handle)
	if s.current == handle {
		s.current = ""
	}
	if err := page.Close(); err != nil {
		return newscrawl.Errorf(newscrawl.ESESSION, "close tab: %v", err)
	}
	return nil
}

// Tabs returns the number of open tabs.
func (s *Session) Tabs() int {
	return len(s.pages)
}

// Quit closes every tab, the browser and its process. Quit is safe to call
// multiple times.
func (s *Session) Quit() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for handle, page := range s.pages {
		if err := page.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(s.pages, handle)
	}
	s.current = ""

	if err := s.browser.Close(); err != nil {
		errs = append(errs, err)
	}
	s.launcher.Kill()
	return errors.Join(errs...)
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}
