package goquery

import (
	"net/url"
	"strings"
)

// resolveHref resolves href against base and strips the fragment.
// Returns "" for unparseable or non-HTTP links (javascript:, mailto:, data:).
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	var resolved *url.URL
	if base != nil {
		resolved = base.ResolveReference(ref)
	} else {
		resolved = ref
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// parseBase parses baseURL, returning nil when it is empty or invalid so
// that only absolute hrefs resolve.
func parseBase(baseURL string) *url.URL {
	if baseURL == "" {
		return nil
	}
	u, err := url.Parse(baseURL)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
