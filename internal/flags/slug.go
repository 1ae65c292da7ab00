package flags

import (
	"regexp"
	"strings"
)

// UnknownSlug replaces names that slugify to nothing.
const UnknownSlug = "unknown"

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into a single hyphen and trims hyphens from both ends. The result is never
// empty, and Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	out := nonSlugRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	out = strings.Trim(out, "-")
	if out == "" {
		return UnknownSlug
	}
	return out
}
