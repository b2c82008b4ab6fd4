package crawl

import (
	"context"
	"errors"

	"github.com/newsspeech/newscrawl"
)

// withTab runs fn in a new tab of session. The tab is closed and focus
// returns to the tab that was focused before, whether or not fn fails.
// Errors from fn take precedence over teardown errors.
func withTab(ctx context.Context, session newscrawl.BrowserSession, fn func(tab newscrawl.TabHandle) error) (err error) {
	previous := session.CurrentTab()

	tab, err := session.OpenTab(ctx)
	if err != nil {
		return err
	}
	defer func() {
		teardown := errors.Join(session.CloseTab(tab), session.SwitchTab(previous))
		if err == nil {
			err = teardown
		}
	}()

	return fn(tab)
}
