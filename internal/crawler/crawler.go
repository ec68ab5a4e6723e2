// Package crawler provides the core site traversal functionality.
// It implements a breadth-first, single-tab crawler with rate limiting,
// visited-set deduplication, and per-page failure isolation.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"sitesage/internal/config"
)

// Session owns the state of one crawl invocation: the visited set, the
// frontier queue, and the collaborators that fetch, extract, and
// persist pages. Sessions are single-use and must not be shared across
// concurrent crawls.
type Session struct {
	config    *config.CrawlConfig
	fetcher   Fetcher
	extractor Extractor
	storage   Storage // optional; nil disables persistence
	pacer     *Pacer

	baseURL  *url.URL
	baseHost string
	visited  *VisitedSet
	frontier *FrontierQueue

	stats CrawlStats
}

// NewSession creates a crawl session with the provided configuration
// and collaborators. The fetcher's browser lifecycle belongs to the
// caller; the session only borrows it for the duration of one Crawl.
func NewSession(cfg *config.CrawlConfig, fetcher Fetcher, extractor Extractor, storage Storage) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Session{
		config:    cfg,
		fetcher:   fetcher,
		extractor: extractor,
		storage:   storage,
		pacer:     NewPacer(cfg.RequestDelay),
		visited:   NewVisitedSet(),
		frontier:  NewFrontierQueue(),
	}, nil
}

// Crawl traverses the site reachable from startURL breadth-first,
// bounded by the configured depth and page budgets, and returns the
// accumulated page records in fetch completion order.
//
// Per-page fetch and extraction failures are recorded as failed
// outcomes and do not abort the crawl. Only session-level failures
// (an unusable start URL, a cancelled context, a persistence error)
// surface as an error.
func (s *Session) Crawl(ctx context.Context, startURL string) (*Result, error) {
	if err := config.ValidateStartURL(startURL); err != nil {
		return nil, err
	}

	base, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("parse start URL: %w", err)
	}
	s.baseURL = base
	s.baseHost = base.Hostname()
	s.stats.StartTime = time.Now()

	s.frontier.Enqueue(FrontierEntry{URL: startURL, Depth: 0})

	result := &Result{StartURL: startURL}

	slog.Info("Starting crawl",
		"start_url", startURL,
		"max_depth", s.config.MaxDepth,
		"max_pages", s.config.MaxPages,
		"same_domain", s.config.SameDomain)

	for s.frontier.Len() > 0 && s.visited.Len() < s.config.MaxPages {
		entry, _ := s.frontier.Dequeue()

		// Visited is marked at dequeue, not at enqueue, so the same
		// URL may sit in the frontier several times. The second
		// dequeue is a no-op skip that consumes no page-budget slot
		// and no inter-page delay.
		if s.visited.Contains(entry.URL) {
			s.stats.PagesSkipped++
			result.Outcomes = append(result.Outcomes, Outcome{
				URL:    entry.URL,
				Depth:  entry.Depth,
				Status: OutcomeSkipped,
				Reason: "already visited",
			})
			continue
		}
		s.visited.Mark(entry.URL)

		if err := s.pacer.Wait(ctx); err != nil {
			result.Stats = s.snapshotStats()
			return result, fmt.Errorf("crawl interrupted: %w", err)
		}

		outcome := s.processEntry(ctx, entry)
		result.Outcomes = append(result.Outcomes, outcome)

		switch outcome.Status {
		case OutcomeSuccess:
			result.Pages = append(result.Pages, *outcome.Page)
			s.stats.PagesCrawled++
		case OutcomeFailed:
			s.stats.PagesFailed++
		}
	}

	result.Stats = s.snapshotStats()

	slog.Info("Crawl completed",
		"start_url", startURL,
		"pages", s.stats.PagesCrawled,
		"failed", s.stats.PagesFailed,
		"skipped", s.stats.PagesSkipped,
		"duration", result.Stats.Duration)

	if s.storage != nil {
		if err := s.storage.SaveCrawl(startURL, result.Pages); err != nil {
			return result, fmt.Errorf("persist crawl result: %w", err)
		}
	}

	return result, nil
}

// processEntry fetches and extracts a single frontier entry and, when
// the entry's depth allows, screens its outbound links into the
// frontier at depth+1.
func (s *Session) processEntry(ctx context.Context, entry FrontierEntry) Outcome {
	slog.Debug("Processing page", "url", entry.URL, "depth", entry.Depth)

	markup, err := s.fetcher.Fetch(ctx, entry.URL)
	if err != nil {
		slog.Warn("Page fetch failed", "url", entry.URL, "depth", entry.Depth, "error", err)
		return Outcome{
			URL:    entry.URL,
			Depth:  entry.Depth,
			Status: OutcomeFailed,
			Reason: fmt.Sprintf("fetch: %v", err),
		}
	}

	extraction, err := s.extractor.Extract(markup, entry.URL)
	if err != nil {
		slog.Warn("Page extraction failed", "url", entry.URL, "depth", entry.Depth, "error", err)
		return Outcome{
			URL:    entry.URL,
			Depth:  entry.Depth,
			Status: OutcomeFailed,
			Reason: fmt.Sprintf("extract: %v", err),
		}
	}

	record := &PageRecord{
		URL:     entry.URL,
		Title:   extraction.Title,
		Content: extraction.Content,
	}

	// Links found at max depth are recorded nowhere: no entry ever
	// enters the frontier deeper than MaxDepth from the start.
	if entry.Depth < s.config.MaxDepth {
		enqueued := 0
		for _, link := range extraction.Links {
			if IsEligible(link, s.visited, s.baseHost, s.config) {
				s.frontier.Enqueue(FrontierEntry{URL: link, Depth: entry.Depth + 1})
				enqueued++
			}
		}
		slog.Debug("Expanded page links",
			"url", entry.URL,
			"found", len(extraction.Links),
			"enqueued", enqueued,
			"frontier", s.frontier.Len())
	}

	return Outcome{
		URL:    entry.URL,
		Depth:  entry.Depth,
		Status: OutcomeSuccess,
		Page:   record,
	}
}

// GetStats returns statistics for the crawl so far.
func (s *Session) GetStats() CrawlStats {
	return s.snapshotStats()
}

func (s *Session) snapshotStats() CrawlStats {
	stats := s.stats
	stats.Duration = time.Since(stats.StartTime)
	return stats
}
