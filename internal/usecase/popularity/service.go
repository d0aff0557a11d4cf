package popularity

import (
	"sort"

	"github.com/yazarlar/articlekit/internal/domain/popularity"
)

// DefaultLimit is the number of entries returned when the caller passes none.
const DefaultLimit = 10

// Service orders articles by weighted engagement.
type Service struct {
	weights popularity.Weights
	limit   int
}

// New creates a popularity ranker. Weights must already be validated.
func New(weights popularity.Weights, limit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{weights: weights, limit: limit}
}

// Top scores entries and returns at most limit of them, highest first.
// Entries with equal scores keep their input order.
func (s *Service) Top(entries []popularity.Entry, limit int) []popularity.Ranked {
	if limit <= 0 {
		limit = s.limit
	}

	ranked := make([]popularity.Ranked, len(entries))
	for i, e := range entries {
		ranked[i] = popularity.Ranked{Entry: e, Score: s.weights.Score(e.Likes, e.Views)}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
