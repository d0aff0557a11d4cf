package similarity

import (
	"math"
	"testing"

	"github.com/yazarlar/articlekit/internal/stopwords"
)

func TestTFIDF_Vectorize(t *testing.T) {
	v := NewTFIDF(stopwords.NewSet("en", []string{"the"}))

	vectors, err := v.Vectorize([]string{"the cat sat", "the cat ran", "a dog"})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}

	// "the" is a stopword and "a" is too short: vocabulary is cat, dog, ran, sat.
	if vectors[0].Len() != 2 || vectors[2].Len() != 1 {
		t.Errorf("unexpected dimensions: %d, %d", vectors[0].Len(), vectors[2].Len())
	}

	for i, vec := range vectors {
		var norm float64
		for _, tm := range vec.terms {
			norm += tm.weight * tm.weight
		}
		if math.Abs(norm-1) > 1e-12 {
			t.Errorf("vector %d not unit length: %v", i, norm)
		}
	}

	// cat: df=2 -> idf = ln(4/3)+1, sat: df=1 -> idf = ln(2)+1.
	cat, sat := math.Log(4.0/3.0)+1, math.Log(2)+1
	want := cat * cat / (cat*cat + sat*sat)
	if got := vectors[0].Cosine(vectors[1]); math.Abs(got-want) > 1e-12 {
		t.Errorf("cosine = %v, want %v", got, want)
	}
	if got := vectors[0].Cosine(vectors[2]); got != 0 {
		t.Errorf("expected 0 for disjoint documents, got %v", got)
	}
}

func TestTFIDF_TermCounts(t *testing.T) {
	vectors, err := NewTFIDF(stopwords.Set{}).Vectorize([]string{"kedi kedi köpek", "kedi köpek"})
	if err != nil {
		t.Fatal(err)
	}
	// Same idf for both terms, counts 2:1 in the first document.
	got := vectors[0].Cosine(vectors[1])
	want := 3 / (math.Sqrt(5) * math.Sqrt(2))
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("cosine = %v, want %v", got, want)
	}
}

func TestVector_CosineEmpty(t *testing.T) {
	var empty Vector
	full := Vector{terms: []term{{index: 0, weight: 1}}}
	if got := empty.Cosine(full); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := full.Cosine(full); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestTFIDF_EmptyCorpus(t *testing.T) {
	vectors, err := NewTFIDF(stopwords.Set{}).Vectorize(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected no vectors, got %d", len(vectors))
	}
}
