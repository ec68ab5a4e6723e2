// Package config provides configuration management for the crawler.
// It defines configuration structures and default values for crawling parameters.
package config

import (
	"net/url"
	"time"
)

// CrawlConfig holds crawler configuration. It is immutable for the
// duration of one crawl and is validated once at crawl start.
type CrawlConfig struct {
	// Traversal budgets
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"` // Links found at this depth are not expanded
	MaxPages int `mapstructure:"max_pages" yaml:"max_pages"` // Stop after visiting N pages

	// URL filtering
	SameDomain      bool     `mapstructure:"same_domain" yaml:"same_domain"`           // Restrict traversal to the start URL's host
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"` // Substrings that disqualify a URL

	// Politeness and fetching
	RequestDelay time.Duration `mapstructure:"request_delay" yaml:"request_delay"` // Delay between processed pages
	PageTimeout  time.Duration `mapstructure:"page_timeout" yaml:"page_timeout"`   // Per-page navigation/render timeout
	SettleDelay  time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`   // Quiet period for network-idle detection
	Headless     bool          `mapstructure:"headless" yaml:"headless"`           // Run the browser without a visible window
	UserAgent    string        `mapstructure:"user_agent" yaml:"user_agent"`       // Browser User-Agent override (empty = browser default)

	// Database configuration
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"` // Path to SQLite database file
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *CrawlConfig {
	return &CrawlConfig{
		MaxDepth:   2,
		MaxPages:   20,
		SameDomain: true,
		ExcludePatterns: []string{
			"/auth/", "/login", "/logout", "/signin", "/signup", "/register",
			".pdf", ".jpg", ".png", ".gif",
		},
		RequestDelay: 1 * time.Second,
		PageTimeout:  30 * time.Second,
		SettleDelay:  500 * time.Millisecond,
		Headless:     true,
		DatabasePath: "./sitesage.db",
	}
}

// Validate checks if the configuration is valid
func (c *CrawlConfig) Validate() error {
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	if c.PageTimeout <= 0 {
		return ErrInvalidTimeout
	}

	// Enforce a minimum delay so serialized fetches stay polite
	if c.RequestDelay < 100*time.Millisecond {
		c.RequestDelay = 100 * time.Millisecond
	}

	if c.DatabasePath == "" {
		return ErrEmptyDatabasePath
	}

	return nil
}

// ValidateStartURL checks that a start URL is an absolute http(s) URL.
func ValidateStartURL(startURL string) error {
	parsed, err := url.Parse(startURL)
	if err != nil {
		return ErrInvalidStartURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidStartURL
	}
	if parsed.Host == "" {
		return ErrInvalidStartURL
	}
	return nil
}
