// Package slug derives and validates URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	pattern       = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRuns    = regexp.MustCompile(`-{2,}`)
	edgeOfHyphens = regexp.MustCompile(`^-+|-+$`)
)

// Make derives a URL-safe slug from a display name.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return edgeOfHyphens.ReplaceAllString(s, "")
}

// Valid reports whether s is lowercase letters, digits and single
// hyphens with no leading or trailing hyphen.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
