// Package urlutil provides URL canonicalization shared by the link
// extractor and the crawl controller.
package urlutil

import "net/url"

// Normalize resolves rawHref against base to an absolute URL and
// strips any fragment component, so fragment-only variants of a page
// collapse to one visited-set key. It returns the empty string when
// the href cannot be parsed relative to the base; it never fails to
// the caller.
func Normalize(rawHref string, base *url.URL) string {
	if base == nil || rawHref == "" {
		return ""
	}

	ref, err := url.Parse(rawHref)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}
