package post

import (
	"regexp"
	"strings"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text and collapses every run of other characters into
// a single hyphen. An empty result falls back to "post" so the output path
// always exists.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "post"
	}
	return s
}
