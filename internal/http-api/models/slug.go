package models

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 200

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	slugSpacing  = regexp.MustCompile(`[-\s]+`)
)

// Slugify lowercases s, folds accents to ASCII, drops punctuation and joins words with hyphens.
// "Assassin's Creed: Valhalla" -> "assassins-creed-valhalla"
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}

	slug := strings.ToLower(b.String())
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = slugSpacing.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = strings.Trim(slug, "-_")

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-_")
	}
	return slug
}
