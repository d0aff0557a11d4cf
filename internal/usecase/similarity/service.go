package similarity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/yazarlar/articlekit/internal/domain/article"
	"github.com/yazarlar/articlekit/internal/domain/similarity"
	logpkg "github.com/yazarlar/articlekit/internal/logger"
	"github.com/yazarlar/articlekit/internal/metrics"
)

const operation = "find_similar"

// Defaults for Config.
const (
	// DefaultThreshold suppresses noise matches from small or disjoint vocabularies.
	// Results must score strictly above it.
	DefaultThreshold = 0.1
	DefaultTopN      = 5
)

// ErrVectorizerPanic wraps a panic raised inside the vectorizer.
var ErrVectorizerPanic = errors.New("vectorizer panicked")

// Config tunes the ranker.
type Config struct {
	Threshold float64
	TopN      int // used when the caller passes a non-positive count
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, TopN: DefaultTopN}
}

// Service ranks candidate documents by lexical similarity to a query text.
// It is best-effort: internal failures yield an empty ranking, never an error.
type Service struct {
	vectorizer Vectorizer
	cfg        Config
	logger     *zap.Logger
}

// New creates a similarity service with DefaultConfig.
func New(vectorizer Vectorizer, logger *zap.Logger) *Service {
	return &Service{vectorizer: vectorizer, cfg: DefaultConfig(), logger: logger}
}

// WithConfig overrides the settings. A negative threshold or non-positive
// topN keeps the default.
func (s *Service) WithConfig(cfg Config) *Service {
	if cfg.Threshold >= 0 {
		s.cfg.Threshold = cfg.Threshold
	}
	if cfg.TopN > 0 {
		s.cfg.TopN = cfg.TopN
	}
	return s
}

// outcome is the result of the scoring step: one score per candidate.
type outcome struct {
	scores []float64
	err    error
}

// FindSimilar returns at most topN candidates scoring above the threshold,
// sorted by descending score. Equal scores keep candidate order.
func (s *Service) FindSimilar(
	ctx context.Context, queryText string, candidates []article.Document, topN int,
) []similarity.Result {
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	results := []similarity.Result{}
	if len(candidates) == 0 {
		return results
	}
	if topN <= 0 {
		topN = s.cfg.TopN
	}

	corpus := make([]string, 0, len(candidates)+1)
	corpus = append(corpus, queryText)
	for i := range candidates {
		corpus = append(corpus, candidates[i].Content())
	}

	out := s.score(corpus)
	if out.err != nil {
		metrics.FallbacksTotal.WithLabelValues(operation).Inc()
		logpkg.FromContextOr(ctx, s.logger).Warn("Similarity ranking failed, returning no results",
			zap.Int("candidates", len(candidates)),
			zap.Error(out.err),
		)
		return results
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return out.scores[order[a]] > out.scores[order[b]]
	})
	if len(order) > topN {
		order = order[:topN]
	}

	for _, idx := range order {
		if score := out.scores[idx]; score > s.cfg.Threshold {
			results = append(results, similarity.NewResult(candidates[idx], score))
		}
	}
	return results
}

func (s *Service) score(corpus []string) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("%w: %v", ErrVectorizerPanic, r)}
		}
	}()

	vectors, err := s.vectorizer.Vectorize(corpus)
	if err != nil {
		return outcome{err: fmt.Errorf("vectorize corpus: %w", err)}
	}
	if len(vectors) != len(corpus) {
		return outcome{err: fmt.Errorf("vectorize corpus: got %d vectors for %d documents", len(vectors), len(corpus))}
	}

	query := vectors[0]
	scores := make([]float64, len(vectors)-1)
	for i, v := range vectors[1:] {
		scores[i] = query.Cosine(v)
	}
	return outcome{scores: scores}
}
