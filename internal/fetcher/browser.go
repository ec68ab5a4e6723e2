// Package fetcher drives a shared headless browser to load pages and
// capture their rendered markup.
package fetcher

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Options configure the browser session and per-page fetches.
type Options struct {
	Headless    bool          // Run without a visible window
	PageTimeout time.Duration // Per-page navigation/render budget
	SettleDelay time.Duration // Quiet period that counts as network idle
	UserAgent   string        // Optional User-Agent override
}

// Browser owns one headless browser process. It is created once per
// crawl session, backs every fetch within that session, and must be
// closed by its owner on all paths. It must not be shared across
// concurrent crawls.
type Browser struct {
	opts     Options
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewBrowser creates an unopened browser session with the given
// options, applying defaults for unset timeouts.
func NewBrowser(opts Options) *Browser {
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 30 * time.Second
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 500 * time.Millisecond
	}
	return &Browser{opts: opts}
}

// Open launches the browser process and connects to it. A failed
// launch leaves nothing behind to close.
func (b *Browser) Open() error {
	l := launcher.New().Headless(b.opts.Headless)

	controlURL, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connect browser: %w", err)
	}

	b.launcher = l
	b.browser = browser
	slog.Debug("Browser session opened", "control_url", controlURL)
	return nil
}

// Close tears down the browser process. It is safe to call when Open
// failed or was never called.
func (b *Browser) Close() error {
	if b.browser == nil {
		return nil
	}

	err := b.browser.Close()
	b.launcher.Cleanup()
	b.browser = nil
	b.launcher = nil

	slog.Debug("Browser session closed")
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}
