package similarity

// Vectorizer turns a corpus into one weight vector per document, all over
// the same vocabulary. Index 0 is the query.
type Vectorizer interface {
	Vectorize(corpus []string) ([]Vector, error)
}
