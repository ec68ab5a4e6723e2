package fetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod/lib/proto"
)

// ErrSessionClosed is returned when Fetch is called before Open or
// after Close.
var ErrSessionClosed = errors.New("browser session is not open")

// Fetch loads one URL in a fresh tab, waits for network activity to
// settle, and returns the rendered markup. The tab is closed on every
// exit path, success or failure.
func (b *Browser) Fetch(ctx context.Context, pageURL string) (string, error) {
	if b.browser == nil {
		return "", ErrSessionClosed
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open tab: %w", err)
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx).Timeout(b.opts.PageTimeout)

	if b.opts.UserAgent != "" {
		override := &proto.NetworkSetUserAgentOverride{UserAgent: b.opts.UserAgent}
		if err := page.SetUserAgent(override); err != nil {
			return "", fmt.Errorf("set user agent: %w", err)
		}
	}

	// The idle waiter subscribes to network events, so it has to be
	// armed before navigation starts.
	waitIdle := page.WaitRequestIdle(b.opts.SettleDelay, nil, nil, nil)

	if err := page.Navigate(pageURL); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for load: %w", err)
	}
	waitIdle()

	markup, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("capture markup: %w", err)
	}

	return markup, nil
}
