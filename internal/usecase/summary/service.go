package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/yazarlar/articlekit/internal/logger"
	"github.com/yazarlar/articlekit/internal/metrics"
)

const operation = "summarize"

// Defaults for Config.
const (
	DefaultMaxSentences  = 3
	DefaultFallbackChars = 200
	DefaultMarker        = "..."
)

// ErrSplitterPanic wraps a panic raised inside the splitter.
var ErrSplitterPanic = errors.New("sentence splitter panicked")

// Config tunes the summarizer.
type Config struct {
	MaxSentences  int    // used when the caller passes a non-positive count
	FallbackChars int    // runes kept by the fallback branch
	Marker        string // appended when text is truncated
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		MaxSentences:  DefaultMaxSentences,
		FallbackChars: DefaultFallbackChars,
		Marker:        DefaultMarker,
	}
}

// Service produces extractive summaries. It never returns an error: any
// failure of the split step switches to the raw-text fallback.
type Service struct {
	splitter Splitter
	cfg      Config
	logger   *zap.Logger
}

// New creates a summary service with DefaultConfig.
func New(splitter Splitter, logger *zap.Logger) *Service {
	return &Service{splitter: splitter, cfg: DefaultConfig(), logger: logger}
}

// WithConfig overrides the settings; zero fields keep their defaults.
func (s *Service) WithConfig(cfg Config) *Service {
	if cfg.MaxSentences > 0 {
		s.cfg.MaxSentences = cfg.MaxSentences
	}
	if cfg.FallbackChars > 0 {
		s.cfg.FallbackChars = cfg.FallbackChars
	}
	if cfg.Marker != "" {
		s.cfg.Marker = cfg.Marker
	}
	return s
}

// outcome is the result of the split step.
type outcome struct {
	sentences []string
	err       error
}

// Summarize returns the first maxSentences sentences joined by single spaces,
// followed by the marker when sentences were dropped.
func (s *Service) Summarize(ctx context.Context, text string, maxSentences int) string {
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	if maxSentences <= 0 {
		maxSentences = s.cfg.MaxSentences
	}

	out := s.split(text)
	if out.err != nil {
		metrics.FallbacksTotal.WithLabelValues(operation).Inc()
		logpkg.FromContextOr(ctx, s.logger).Warn("Summary fell back to truncated text",
			zap.Int("text_len", len(text)),
			zap.Error(out.err),
		)
		return s.fallback(text)
	}

	if len(out.sentences) <= maxSentences {
		return strings.Join(out.sentences, " ")
	}
	return strings.Join(out.sentences[:maxSentences], " ") + s.cfg.Marker
}

func (s *Service) split(text string) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("%w: %v", ErrSplitterPanic, r)}
		}
	}()
	sentences, err := s.splitter.Split(text)
	if err != nil {
		return outcome{err: fmt.Errorf("split sentences: %w", err)}
	}
	return outcome{sentences: sentences}
}

// fallback keeps the first FallbackChars runes of the raw text.
func (s *Service) fallback(text string) string {
	runes := []rune(text)
	if len(runes) <= s.cfg.FallbackChars {
		return text
	}
	return string(runes[:s.cfg.FallbackChars]) + s.cfg.Marker
}
