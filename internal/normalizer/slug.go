package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slug derives a URL-safe identifier from a title.
// Characters outside [a-z0-9], whitespace and hyphen are dropped, whitespace runs
// become one hyphen and repeated hyphens collapse.
func Slug(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")

	return slugHyphens.ReplaceAllString(s, "-")
}

// SectionSlug names the section built from the block at zero-based index i.
func SectionSlug(articleSlug string, i int) string {
	return articleSlug + "-section" + strconv.Itoa(i+1)
}

// LastPathSegment returns the final segment of a URL, ignoring one trailing slash.
func LastPathSegment(rawURL string) string {
	trimmed := strings.TrimSuffix(rawURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}

	return trimmed
}

// FirstWord returns the text before the first space.
func FirstWord(s string) string {
	word, _, _ := strings.Cut(s, " ")

	return word
}
