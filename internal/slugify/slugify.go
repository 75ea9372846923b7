// Package slugify derives URL-safe identifiers from display names. The
// derivation is deterministic: lower-case, diacritics stripped, runs of
// non-alphanumeric characters collapsed to a single hyphen, no leading or
// trailing hyphen.
package slugify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Derive turns a display name into its slug, e.g. "Café & Cia" -> "cafe-cia".
func Derive(name string) string {
	lowered := strings.ToLower(name)
	plain, _, err := transform.String(stripDiacritics, lowered)
	if err != nil {
		plain = lowered
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range plain {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
