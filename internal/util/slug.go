// Package util provides general-purpose helpers, currently URL slug
// normalization with Unicode support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDash = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string to a URL-safe slug: accents are decomposed and
// stripped, everything else is lowercased and collapsed to single hyphens.
// Example: "Café résumé" -> "cafe-resume".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = nonSlug.ReplaceAllString(result, "")
	result = multiDash.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}
