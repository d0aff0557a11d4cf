package articlekit

import "github.com/yazarlar/articlekit/internal/domain/category"

// Article is a document supplied by the caller. Metadata is returned untouched.
type Article struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// Match is a related article with its similarity score in (threshold, 1].
type Match struct {
	Article Article
	Score   float64
}

// Engagement is an article with its like and view counters.
type Engagement struct {
	Article Article
	Likes   int64
	Views   int64
}

// Popular is an article with its weighted engagement score.
type Popular struct {
	Article Article
	Score   float64
}

// Category is a taxonomy record owned by the caller.
type Category = category.Category

// CategoryRule is a category label with the keywords that trigger it.
type CategoryRule struct {
	Label    string
	Keywords []string
}
