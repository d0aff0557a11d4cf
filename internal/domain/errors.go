package domain

import "errors"

var (
	// ErrInvalidDocument signals a document that fails validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidCategoryTable signals a malformed keyword table.
	ErrInvalidCategoryTable = errors.New("invalid category table")
	// ErrInvalidWeights signals negative or unusable popularity weights.
	ErrInvalidWeights = errors.New("invalid popularity weights")
	// ErrStopwordsUnavailable signals that no source could provide a stopword list.
	ErrStopwordsUnavailable = errors.New("stopwords unavailable")
)

// KeyPrefix is the namespace for every key this service writes to a shared store.
const KeyPrefix = "articlekit:"
