package health

import "context"

// CachePinger checks resource cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// StopwordsChecker reports whether the stopword list for a language is ready.
type StopwordsChecker interface {
	Loaded(lang string) bool
}
