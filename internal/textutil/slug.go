package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug converts a display name into the url-safe directory form stored in the
// site document: lowercased with every run of whitespace collapsed to a single
// hyphen. No other characters are touched so the result always matches the
// directories already referenced by published documents.
func Slug(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}
