package crawler

import (
	"net/url"
	"strings"

	"sitesage/internal/config"
)

// IsEligible decides whether a normalized URL may join the frontier.
// A URL is rejected when it was already visited, when the same-domain
// policy is on and its host differs from the crawl's base host, or
// when it contains any exclude pattern as a substring.
//
// Pattern matching is plain substring containment, not path-segment
// aware: "/login" also excludes "/loginpage".
func IsEligible(urlStr string, visited *VisitedSet, baseHost string, cfg *config.CrawlConfig) bool {
	if visited.Contains(urlStr) {
		return false
	}

	if cfg.SameDomain {
		parsed, err := url.Parse(urlStr)
		if err != nil || parsed.Hostname() != baseHost {
			return false
		}
	}

	for _, pattern := range cfg.ExcludePatterns {
		if pattern != "" && strings.Contains(urlStr, pattern) {
			return false
		}
	}

	return true
}
