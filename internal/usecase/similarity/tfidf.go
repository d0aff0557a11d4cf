package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/yazarlar/articlekit/internal/stopwords"
	"github.com/yazarlar/articlekit/internal/text"
)

// ErrNonFiniteWeight signals a NaN or Inf weight, which would poison every score.
var ErrNonFiniteWeight = errors.New("non-finite term weight")

// term is one non-zero dimension of a Vector.
type term struct {
	index  int
	weight float64
}

// Vector is a sparse term-weight vector sorted by vocabulary index.
type Vector struct {
	terms []term
}

// Len returns the number of non-zero dimensions.
func (v Vector) Len() int { return len(v.terms) }

// Cosine returns the cosine similarity of v and o, clamped to [0,1].
// Empty vectors score 0.
func (v Vector) Cosine(o Vector) float64 {
	var dot, nv, no float64
	for _, t := range v.terms {
		nv += t.weight * t.weight
	}
	for _, t := range o.terms {
		no += t.weight * t.weight
	}
	if nv == 0 || no == 0 {
		return 0
	}

	i, j := 0, 0
	for i < len(v.terms) && j < len(o.terms) {
		switch a, b := v.terms[i], o.terms[j]; {
		case a.index == b.index:
			dot += a.weight * b.weight
			i++
			j++
		case a.index < b.index:
			i++
		default:
			j++
		}
	}

	sim := dot / math.Sqrt(nv*no)
	switch {
	case sim > 1:
		return 1
	case sim < 0:
		return 0
	}
	return sim
}

// TFIDF weights raw term counts by smoothed inverse document frequency,
// idf(t) = ln((1+n)/(1+df(t))) + 1, and L2-normalises each vector.
// Stopwords never enter the vocabulary.
type TFIDF struct {
	stop stopwords.Set
}

// NewTFIDF creates a vectorizer excluding the given stopwords.
func NewTFIDF(stop stopwords.Set) *TFIDF {
	return &TFIDF{stop: stop}
}

// Vectorize implements Vectorizer.
func (v *TFIDF) Vectorize(corpus []string) ([]Vector, error) {
	docs := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, content := range corpus {
		docs[i] = v.stop.Filter(text.Tokenize(content))
		seen := make(map[string]struct{}, len(docs[i]))
		for _, w := range docs[i] {
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				df[w]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for w := range df {
		vocab = append(vocab, w)
	}
	sort.Strings(vocab)
	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(corpus))
	for i, w := range vocab {
		index[w] = i
		idf[i] = math.Log((1+n)/(1+float64(df[w]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for d, tokens := range docs {
		counts := make(map[int]int, len(tokens))
		for _, w := range tokens {
			counts[index[w]]++
		}

		terms := make([]term, 0, len(counts))
		var norm float64
		for idx, c := range counts {
			w := float64(c) * idf[idx]
			terms = append(terms, term{index: idx, weight: w})
			norm += w * w
		}
		sort.Slice(terms, func(a, b int) bool { return terms[a].index < terms[b].index })

		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range terms {
				terms[k].weight /= norm
				if math.IsNaN(terms[k].weight) || math.IsInf(terms[k].weight, 0) {
					return nil, fmt.Errorf("%w: document %d term %q", ErrNonFiniteWeight, d, vocab[terms[k].index])
				}
			}
		}
		vectors[d] = Vector{terms: terms}
	}

	return vectors, nil
}
