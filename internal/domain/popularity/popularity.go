package popularity

import (
	"fmt"
	"math"

	"github.com/yazarlar/articlekit/internal/domain"
	"github.com/yazarlar/articlekit/internal/domain/article"
)

// Default engagement weights. Views dominate likes; the ratio is inherited
// from the platform's "top articles" listing and is configurable.
const (
	DefaultLikesWeight = 0.3
	DefaultViewsWeight = 0.7
)

// Weights scales engagement counters into a single score.
type Weights struct {
	Likes float64
	Views float64
}

// DefaultWeights returns the built-in weights.
func DefaultWeights() Weights {
	return Weights{Likes: DefaultLikesWeight, Views: DefaultViewsWeight}
}

// Validate rejects negative or non-finite weights.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{"likes": w.Likes, "views": w.Views} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s weight must be a finite non-negative number, got %v", domain.ErrInvalidWeights, name, v)
		}
	}
	return nil
}

// Score computes likes*Likes + views*Views.
func (w Weights) Score(likes, views int64) float64 {
	return float64(likes)*w.Likes + float64(views)*w.Views
}

// Entry is a document with its engagement counters.
type Entry struct {
	Document article.Document
	Likes    int64
	Views    int64
}

// Ranked is an entry with its computed popularity score.
type Ranked struct {
	Entry Entry
	Score float64
}
