package text

import (
	"regexp"
	"strings"
)

// reBoundary matches a run of sentence terminators; a run is a single boundary.
var reBoundary = regexp.MustCompile(`[.!?]+`)

// SentenceSplitter splits text on terminal punctuation.
type SentenceSplitter struct{}

// Split returns trimmed, non-empty sentences without their terminators.
// Text with no terminator yields a single sentence.
func (SentenceSplitter) Split(text string) ([]string, error) {
	return Sentences(text), nil
}

// Sentences is the plain-function form of SentenceSplitter.Split.
func Sentences(text string) []string {
	parts := reBoundary.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
