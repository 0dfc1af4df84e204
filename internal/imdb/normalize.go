package imdb

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery prepares a scraped title for use as a search query.
// Accents are stripped because IMDb's English-language index matches
// better on ASCII forms of transliterated titles; case and word order
// are preserved.
func NormalizeQuery(title string) string {
	s := removeAccents(title)
	s = strings.ReplaceAll(s, "&", "and")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeForComparison lowers and strips a title down to letters,
// digits and spaces so similarity scoring isn't thrown off by
// punctuation differences between the two sites.
func NormalizeForComparison(title string) string {
	s := strings.ToLower(removeAccents(title))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
