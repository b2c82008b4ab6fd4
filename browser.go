package newscrawl

import "context"

// TabHandle identifies a tab within a BrowserSession.
type TabHandle string

// SessionOptions configures a browser session.
type SessionOptions struct {
	Headless  bool
	UserAgent string
}

// BrowserLauncher starts scripted browser sessions.
type BrowserLauncher interface {
	// Launch starts an isolated session configured to minimize automation
	// fingerprinting. Failures return ESESSION.
	Launch(ctx context.Context, opts SessionOptions) (BrowserSession, error)
}

// BrowserSession drives one browser. It starts with a single focused tab.
// A session is owned by one caller and is not safe for concurrent use.
type BrowserSession interface {
	// Navigate loads url in the focused tab.
	Navigate(ctx context.Context, url string) error

	// HTML returns the rendered HTML of the focused tab.
	HTML(ctx context.Context) (string, error)

	// Click clicks the first element matching selector in the focused tab.
	// Returns ENOTFOUND if no element matches.
	Click(ctx context.Context, selector string) error

	// CurrentTab returns the focused tab.
	CurrentTab() TabHandle

	// OpenTab opens a blank tab and focuses it.
	OpenTab(ctx context.Context) (TabHandle, error)

	// SwitchTab focuses an open tab.
	SwitchTab(handle TabHandle) error

	// CloseTab closes a tab. Closing the focused tab leaves no tab focused
	// until SwitchTab is called.
	CloseTab(handle TabHandle) error

	// Tabs returns the number of open tabs.
	Tabs() int

	// Quit closes every tab and terminates the browser. Quit is safe to
	// call more than once.
	Quit() error
}
