package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// SlugPattern defines the canonical slug format: lowercase alphanumeric words
// joined by hyphens, optionally grouped into path segments with slashes.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*(?:/[a-z0-9]+(?:-[a-z0-9]+)*)*$`)

// MaxQueryLength bounds resolver input accepted over HTTP.
const MaxQueryLength = 200

// ValidateSlug checks if a slug matches the canonical pattern.
func ValidateSlug(slug string) bool {
	if slug == "" || len(slug) > 100 {
		return false
	}
	return SlugPattern.MatchString(slug)
}

// SplitAnchor separates an optional "#anchor" suffix from a slug.
func SplitAnchor(s string) (base, anchor string) {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// ValidateQuery checks that a resolver query is non-blank and bounded.
func ValidateQuery(q string) (bool, string) {
	if strings.TrimSpace(q) == "" {
		return false, "query is required"
	}
	if len(q) > MaxQueryLength {
		return false, "query is too long"
	}
	return true, ""
}

// ValidateLevel reports whether level is one the log pipeline understands.
func ValidateLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidateURL reports whether urlStr is an absolute http or https URL with a
// host. The message explains a rejection.
func ValidateURL(urlStr string) (bool, string) {
	if strings.TrimSpace(urlStr) == "" {
		return false, "url is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "url is malformed"
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false, "url must use http or https"
	}

	if u.Hostname() == "" {
		return false, "url has no host"
	}
	return true, ""
}
