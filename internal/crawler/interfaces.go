package crawler

import (
	"context"

	"sitesage/internal/extract"
)

// Fetcher loads one URL in a rendered browser tab and returns the
// final markup. Implementations must release the tab on every exit
// path, including failures.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor turns rendered markup into a title, body text, and
// outbound links, resolving links against the page's own URL.
type Extractor interface {
	Extract(markup, pageURL string) (*extract.Extraction, error)
}

// Storage persists completed crawl results.
type Storage interface {
	// SaveCrawl stores the result of one crawl keyed by its start URL,
	// replacing any previous crawl of the same start URL.
	SaveCrawl(startURL string, pages []PageRecord) error

	// Database lifecycle
	Close() error
}
