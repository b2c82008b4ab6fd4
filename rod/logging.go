package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/newsspeech/newscrawl"
)

// Ensure the logging decorators implement the browser interfaces.
var (
	_ newscrawl.BrowserLauncher = (*LoggingLauncher)(nil)
	_ newscrawl.BrowserSession  = (*LoggingSession)(nil)
)

// LoggingLauncher wraps a BrowserLauncher so that launched sessions log
// their page loads.
type LoggingLauncher struct {
	next   newscrawl.BrowserLauncher
	logger *slog.Logger
}

// NewLoggingLauncher creates a new LoggingLauncher.
func NewLoggingLauncher(next newscrawl.BrowserLauncher, logger *slog.Logger) *LoggingLauncher {
	return &LoggingLauncher{next: next, logger: logger}
}

// Launch logs the launch and wraps the session in a LoggingSession.
func (l *LoggingLauncher) Launch(ctx context.Context, opts newscrawl.SessionOptions) (_ newscrawl.BrowserSession, err error) {
	defer func(begin time.Time) {
		l.logger.Info("browser launch",
			"headless", opts.Headless,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	session, err := l.next.Launch(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &LoggingSession{BrowserSession: session, logger: l.logger}, nil
}

// LoggingSession logs navigation, clicks and teardown of a BrowserSession.
type LoggingSession struct {
	newscrawl.BrowserSession
	logger *slog.Logger
}

// Navigate logs the URL being loaded and delegates to the wrapped session.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"tabs", s.Tabs(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.BrowserSession.Navigate(ctx, url)
}

// Click logs the selector and delegates to the wrapped session.
func (s *LoggingSession) Click(ctx context.Context, selector string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("click",
			"selector", selector,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.BrowserSession.Click(ctx, selector)
}

// Quit logs teardown and delegates to the wrapped session.
func (s *LoggingSession) Quit() (err error) {
	tabs := s.Tabs()
	defer func() {
		s.logger.Info("browser quit", "tabs", tabs, "err", err)
	}()
	return s.BrowserSession.Quit()
}
