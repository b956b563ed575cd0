package crawld

import (
	"net/url"
	"strings"
)

// NormalizeURL trims surrounding whitespace and returns the empty string
// for blank input. URLs that already carry an http or https scheme pass
// through otherwise unchanged; normalization is intentionally minimal (no
// case folding, no trailing-slash collapsing, no query canonicalization).
func NormalizeURL(raw string) string {
	return strings.TrimSpace(raw)
}

// IsHTTP reports whether the URL carries an http or https scheme.
func IsHTTP(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}

// LooksLikeSitemap reports whether the URL's shape suggests a sitemap
// document: an .xml or .xml.gz suffix, or "sitemap" anywhere in the URL.
func LooksLikeSitemap(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.HasSuffix(lower, ".xml") ||
		strings.HasSuffix(lower, ".xml.gz") ||
		strings.Contains(lower, "sitemap")
}

// Host returns the lowercased host of the URL with any "www." prefix
// stripped, or the empty string if the URL cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	return strings.TrimPrefix(host, "www.")
}

// MatchesDomain reports whether host equals domain or is a subdomain of it
// (dotted-suffix match).
func MatchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
