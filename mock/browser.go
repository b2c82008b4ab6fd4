package mock

import (
	"context"

	"github.com/newsspeech/newscrawl"
)

var (
	_ newscrawl.BrowserLauncher = (*BrowserLauncher)(nil)
	_ newscrawl.BrowserSession  = (*BrowserSession)(nil)
)

// BrowserLauncher is a mock implementation of newscrawl.BrowserLauncher.
type BrowserLauncher struct {
	LaunchFn func(ctx context.Context, opts newscrawl.SessionOptions) (newscrawl.BrowserSession, error)
}

func (l *BrowserLauncher) Launch(ctx context.Context, opts newscrawl.SessionOptions) (newscrawl.BrowserSession, error) {
	return l.LaunchFn(ctx, opts)
}

// BrowserSession is a mock implementation of newscrawl.BrowserSession.
type BrowserSession struct {
	NavigateFn   func(ctx context.Context, url string) error
	HTMLFn       func(ctx context.Context) (string, error)
	ClickFn      func(ctx context.Context, selector string) error
	CurrentTabFn func() newscrawl.TabHandle
	OpenTabFn    func(ctx context.Context) (newscrawl.TabHandle, error)
	SwitchTabFn  func(handle newscrawl.TabHandle) error
	CloseTabFn   func(handle newscrawl.TabHandle) error
	TabsFn       func() int
	QuitFn       func() error
}

func (s *BrowserSession) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *BrowserSession) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *BrowserSession) Click(ctx context.Context, selector string) error {
	return s.ClickFn(ctx, selector)
}

func (s *BrowserSession) CurrentTab() newscrawl.TabHandle {
	return s.CurrentTabFn()
}

func (s *BrowserSession) OpenTab(ctx context.Context) (newscrawl.TabHandle, error) {
	return s.OpenTabFn(ctx)
}

func (s *BrowserSession) SwitchTab(handle newscrawl.TabHandle) error {
	return s.SwitchTabFn(handle)
}

func (s *BrowserSession) CloseTab(handle newscrawl.TabHandle) error {
	return s.CloseTabFn(handle)
}

func (s *BrowserSession) Tabs() int {
	return s.TabsFn()
}

func (s *BrowserSession) Quit() error {
	return s.QuitFn()
}
