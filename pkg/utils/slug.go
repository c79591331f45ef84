package utils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugChars = regexp.MustCompile("[^a-z0-9]+")

// GenerateSlug turns a page title into a URL slug. Accents are stripped.
func GenerateSlug(text string) string {
	text = strings.ReplaceAll(text, "&", " and ")

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	text, _, _ = transform.String(t, text)

	text = strings.ToLower(text)
	text = nonSlugChars.ReplaceAllString(text, "-")

	return strings.Trim(text, "-")
}

// SlugWithSuffix appends a numeric suffix used to resolve slug collisions.
func SlugWithSuffix(slug string, n int) string {
	if n <= 1 {
		return slug
	}
	return slug + "-" + strconv.Itoa(n)
}
