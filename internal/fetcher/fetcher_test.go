package fetcher

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewBrowserAppliesDefaults(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		wantTimeout time.Duration
		wantSettle  time.Duration
	}{
		{
			name:        "zero values get defaults",
			opts:        Options{Headless: true},
			wantTimeout: 30 * time.Second,
			wantSettle:  500 * time.Millisecond,
		},
		{
			name: "explicit values kept",
			opts: Options{
				PageTimeout: 10 * time.Second,
				SettleDelay: 2 * time.Second,
			},
			wantTimeout: 10 * time.Second,
			wantSettle:  2 * time.Second,
		},
		{
			name:        "negative values get defaults",
			opts:        Options{PageTimeout: -1, SettleDelay: -1},
			wantTimeout: 30 * time.Second,
			wantSettle:  500 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBrowser(tt.opts)
			if b.opts.PageTimeout != tt.wantTimeout {
				t.Errorf("PageTimeout = %v, expected %v", b.opts.PageTimeout, tt.wantTimeout)
			}
			if b.opts.SettleDelay != tt.wantSettle {
				t.Errorf("SettleDelay = %v, expected %v", b.opts.SettleDelay, tt.wantSettle)
			}
		})
	}
}

func TestFetchBeforeOpen(t *testing.T) {
	b := NewBrowser(Options{Headless: true})

	_, err := b.Fetch(context.Background(), "https://example.com/")
	if !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Fetch before Open returned %v, expected ErrSessionClosed", err)
	}
}

func TestCloseWithoutOpen(t *testing.T) {
	b := NewBrowser(Options{Headless: true})

	if err := b.Close(); err != nil {
		t.Errorf("Close without Open returned %v, expected nil", err)
	}
	// Second close stays a no-op.
	if err := b.Close(); err != nil {
		t.Errorf("repeated Close returned %v, expected nil", err)
	}
}
