package crawler

import "time"

// PageRecord is the immutable record produced for one successfully
// fetched page. Records are appended to the crawl result in fetch
// completion order.
type PageRecord struct {
	URL     string // Normalized page URL
	Title   string // Resolved page title
	Content string // Whitespace-normalized body text
}

// FrontierEntry pairs a discovered URL with its discovery depth.
// Entries are created when a link passes eligibility screening and
// consumed exactly once when dequeued.
type FrontierEntry struct {
	URL   string
	Depth int
}

// OutcomeStatus classifies what happened to one dequeued frontier entry.
type OutcomeStatus string

const (
	// OutcomeSuccess means the page was fetched and extracted and
	// contributed a PageRecord.
	OutcomeSuccess OutcomeStatus = "success"
	// OutcomeSkipped means the entry was discarded without a fetch
	// attempt, typically a duplicate of an already-visited URL.
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeFailed means the fetch or extraction failed; the page
	// contributed nothing and its links were not explored.
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome records the result of processing one frontier entry, making
// per-page failure visibility part of the result rather than a side
// channel in the logs.
type Outcome struct {
	URL    string
	Depth  int
	Status OutcomeStatus
	Reason string      // Populated for skipped and failed entries
	Page   *PageRecord // Populated for successful entries
}

// Result holds everything one crawl produced.
type Result struct {
	StartURL string
	Pages    []PageRecord // Successes in BFS dequeue order
	Outcomes []Outcome    // One entry per dequeued frontier entry
	Stats    CrawlStats
}

// CrawlStats represents crawling statistics
type CrawlStats struct {
	PagesCrawled int
	PagesSkipped int
	PagesFailed  int
	StartTime    time.Time
	Duration     time.Duration
}
