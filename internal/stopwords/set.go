// Package stopwords provides the immutable, per-language stopword set used to
// exclude high-frequency words from the similarity vocabulary.
package stopwords

import (
	"bufio"
	"sort"
	"strings"
)

// Set is an immutable stopword set. The zero value is an empty set.
type Set struct {
	lang  string
	words map[string]struct{}
}

// NewSet builds a Set from words. Words are trimmed and lowercased; blanks are skipped.
func NewSet(lang string, words []string) Set {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			m[w] = struct{}{}
		}
	}
	return Set{lang: lang, words: m}
}

// Language returns the language code the set was loaded for.
func (s Set) Language() string { return s.lang }

// Len returns the number of stopwords.
func (s Set) Len() int { return len(s.words) }

// Contains reports whether word (already lowercased) is a stopword.
func (s Set) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Words returns the stopwords sorted, as a new slice.
func (s Set) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Filter returns tokens that are not stopwords, preserving order.
func (s Set) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// ParseList reads one word per line, ignoring blank lines and # comments.
func ParseList(data string) []string {
	var words []string
	scan := bufio.NewScanner(strings.NewReader(data))
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}
