package similarity

import "github.com/yazarlar/articlekit/internal/domain/article"

// Result is a candidate document paired with its similarity to the query.
type Result struct {
	document article.Document
	score    float64
}

// NewResult creates a similarity result.
func NewResult(doc article.Document, score float64) Result {
	return Result{document: doc, score: score}
}

// Document returns the candidate exactly as it was passed in.
func (r *Result) Document() article.Document { return r.document }

// Score returns the cosine similarity in [0,1].
func (r *Result) Score() float64 { return r.score }
