// Package extract turns rendered page markup into a title, clean body
// text, and outbound links.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sitesage/internal/urlutil"
)

// Extraction holds the content pulled from one rendered page.
type Extraction struct {
	Title   string
	Content string
	Links   []string // Normalized outbound links, first occurrence kept
}

// fallbackTitle is used when neither the document title nor the first
// level-1 heading yields any text.
const fallbackTitle = "Untitled Page"

// removalSelector matches elements whose text must never reach the
// output: executable and presentational markup plus page chrome.
const removalSelector = "script, style, nav, header, footer, iframe, noscript"

// contentSelectors identify likely main-content regions, tried in
// priority order. Every matching region contributes its text, even
// when regions overlap; deduplication is deliberately not performed.
var contentSelectors = []string{
	"main",
	"article",
	`[role="main"]`,
	".content",
	"#content",
	".main-content",
	".post-content",
	".entry-content",
}

var (
	spaceRuns = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankRuns = regexp.MustCompile(`\n\s*\n`)
)

// HTMLExtractor extracts content using CSS selectors over a parsed
// document tree.
type HTMLExtractor struct{}

// New creates an HTML extractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses the rendered markup and produces the page's title,
// normalized body text, and outbound links resolved against pageURL.
func (e *HTMLExtractor) Extract(markup, pageURL string) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page URL: %w", err)
	}

	// Links are collected before the removal pass so navigation
	// anchors still feed the frontier; the eligibility screen decides
	// what actually gets crawled.
	links := collectLinks(doc, base)

	doc.Find(removalSelector).Remove()

	return &Extraction{
		Title:   resolveTitle(doc),
		Content: collectContent(doc),
		Links:   links,
	}, nil
}

// resolveTitle returns the first non-empty candidate: document title,
// first h1, then the literal fallback.
func resolveTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if heading := strings.TrimSpace(doc.Find("h1").First().Text()); heading != "" {
		return heading
	}
	return fallbackTitle
}

// collectContent concatenates the text of every matched content
// region, one newline after each, and falls back to the full body text
// when no region produced anything.
func collectContent(doc *goquery.Document) string {
	var b strings.Builder
	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(_ int, region *goquery.Selection) {
			b.WriteString(region.Text())
			b.WriteString("\n")
		})
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").Text()
	}

	return normalizeWhitespace(text)
}

// collectLinks gathers every anchor's href, normalized against the
// page URL, dropping unparsable results and duplicates.
func collectLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		normalized := urlutil.Normalize(href, base)
		if normalized == "" {
			return
		}
		if _, dup := seen[normalized]; dup {
			return
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
	})

	return links
}

// normalizeWhitespace collapses runs of horizontal whitespace to one
// space and runs of blank lines to one newline, then trims.
func normalizeWhitespace(s string) string {
	s = spaceRuns.ReplaceAllString(s, " ")
	s = blankRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
