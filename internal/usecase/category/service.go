package category

import (
	"strings"
	"time"

	"github.com/yazarlar/articlekit/internal/domain/category"
	"github.com/yazarlar/articlekit/internal/metrics"
)

const operation = "suggest_category"

// Service suggests a category label for an article from its title and content.
// Safe for concurrent use.
type Service struct {
	table category.Table
}

// New creates a suggester over table.
func New(table category.Table) *Service {
	return &Service{table: table}
}

// Suggest returns the label with the most distinct keyword hits, the earliest
// declared one on ties, or the fallback label when nothing matches.
func (s *Service) Suggest(title, content string) string {
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	return s.table.Best(s.Scores(title, content))
}

// Scores returns the distinct keyword hit count per matching label.
func (s *Service) Scores(title, content string) category.Scores {
	return s.table.Scores(category.Fold(title + " " + content))
}

// Fallback returns the label used when no keyword matches.
func (s *Service) Fallback() string { return s.table.Fallback() }

// Resolve returns the taxonomy records whose name contains label, ignoring
// case, in taxonomy order. An empty result means no suggestion.
func (s *Service) Resolve(label string, taxonomy []category.Category) []category.Category {
	out := []category.Category{}
	needle := strings.TrimSpace(category.Fold(label))
	if needle == "" {
		return out
	}
	for _, c := range taxonomy {
		if strings.Contains(category.Fold(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}
