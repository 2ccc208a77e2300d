package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// GenerateSlug turns arbitrary text into a filesystem- and URL-safe token.
// Topic names become media directory names, so this must never produce
// separators or empty path segments for non-empty input.
func GenerateSlug(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	text, _, _ = transform.String(t, text)

	text = strings.ToLower(text)
	text = nonAlnum.ReplaceAllString(text, "-")

	return strings.Trim(text, "-")
}
