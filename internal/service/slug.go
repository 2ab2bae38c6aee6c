package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugDash  = regexp.MustCompile(`[\s_-]+`)
)

// Slugify: "Empanadas de Carne Ñandú" -> "empanadas-de-carne-nandu".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		plain = strings.ToLower(strings.TrimSpace(s))
	}
	plain = slugStrip.ReplaceAllString(plain, "")
	plain = slugDash.ReplaceAllString(plain, "-")
	return strings.Trim(plain, "-")
}
