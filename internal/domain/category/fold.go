package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold normalizes v for keyword matching: NFC composition, then the default
// rune lowercase mapping with dotless ı folded onto i. Keywords and article
// text go through the same fold, so "IŞIK", "ışık" and "işik" all match and
// ASCII "I" in Turkish text is not lost.
func Fold(v string) string {
	return strings.Map(func(r rune) rune {
		if r == 'ı' {
			return 'i'
		}
		return unicode.ToLower(r)
	}, norm.NFC.String(v))
}
