// Package text holds the lexical primitives shared by the summarizer and the
// similarity ranker.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenRunes is the shortest token kept by Tokenize.
const MinTokenRunes = 2

// Tokenize lowercases text and returns every maximal run of word characters
// (letters, numbers, underscore) that is at least MinTokenRunes long.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	fields := strings.FieldsFunc(lowered, func(r rune) bool { return !isWordRune(r) })

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenRunes {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
