package stopwords

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/yazarlar/articlekit/internal/db"
	"github.com/yazarlar/articlekit/internal/domain"
)

// ErrUnavailable is returned when no source can provide a list for a language.
var ErrUnavailable = domain.ErrStopwordsUnavailable

// Source labels for the resource counter.
const (
	SourceCache   = "cache"
	SourceBundled = "bundled"
	SourceRemote  = "remote"
)

// Cache persists word lists across restarts.
// Get returns db.ErrKeyNotFound when lang has no entry.
type Cache interface {
	Get(ctx context.Context, lang string) ([]string, error)
	Put(ctx context.Context, lang string, words []string) error
}

// Fetcher downloads a word list from a remote location.
type Fetcher interface {
	Fetch(ctx context.Context, lang string) ([]string, error)
}

// Loader resolves a Set once per language: cache, then bundled, then remote.
// Remote lists are written back to the cache.
type Loader struct {
	cache       Cache
	fetcher     Fetcher
	sourceTotal *prometheus.CounterVec
	logger      *zap.Logger

	// loadMu serializes resolution, which may block on a remote fetch.
	// stateMu guards loaded and is never held across I/O.
	loadMu  sync.Mutex
	stateMu sync.RWMutex
	loaded  map[string]Set
}

// NewLoader creates a Loader. cache, fetcher and sourceTotal may be nil.
// sourceTotal is a counter vec with label "source".
func NewLoader(cache Cache, fetcher Fetcher, sourceTotal *prometheus.CounterVec, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		cache:       cache,
		fetcher:     fetcher,
		sourceTotal: sourceTotal,
		logger:      logger,
		loaded:      make(map[string]Set),
	}
}

// Load returns the Set for lang. The first successful load is memoized, and
// concurrent callers wait for it instead of loading again. Failures are not
// memoized so a later call may retry.
func (l *Loader) Load(ctx context.Context, lang string) (Set, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return Set{}, fmt.Errorf("%w: language is required", ErrUnavailable)
	}

	if s, ok := l.lookup(lang); ok {
		return s, nil
	}

	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	if s, ok := l.lookup(lang); ok {
		return s, nil
	}

	words, source, err := l.resolve(ctx, lang)
	if err != nil {
		return Set{}, err
	}

	s := NewSet(lang, words)
	l.stateMu.Lock()
	l.loaded[lang] = s
	l.stateMu.Unlock()
	l.incSource(source)
	l.logger.Info("Stopwords loaded",
		zap.String("language", lang),
		zap.String("source", source),
		zap.Int("words", s.Len()),
	)
	return s, nil
}

func (l *Loader) resolve(ctx context.Context, lang string) ([]string, string, error) {
	if words, ok := l.fromCache(ctx, lang); ok {
		return words, SourceCache, nil
	}

	if words, ok := Bundled(lang); ok {
		return words, SourceBundled, nil
	}

	if l.fetcher == nil {
		return nil, "", fmt.Errorf("%w: no bundled list for %q and remote fetch is disabled", ErrUnavailable, lang)
	}

	words, err := l.fetcher.Fetch(ctx, lang)
	if err != nil {
		return nil, "", fmt.Errorf("%w: fetch %q: %w", ErrUnavailable, lang, err)
	}
	if len(words) == 0 {
		return nil, "", fmt.Errorf("%w: remote list for %q is empty", ErrUnavailable, lang)
	}

	l.toCache(ctx, lang, words)
	return words, SourceRemote, nil
}

func (l *Loader) fromCache(ctx context.Context, lang string) ([]string, bool) {
	if l.cache == nil {
		return nil, false
	}
	words, err := l.cache.Get(ctx, lang)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			l.logger.Warn("Failed to read cached stopwords", zap.String("language", lang), zap.Error(err))
		}
		return nil, false
	}
	if len(words) == 0 {
		return nil, false
	}
	return words, true
}

func (l *Loader) toCache(ctx context.Context, lang string, words []string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Put(ctx, lang, words); err != nil {
		l.logger.Warn("Failed to cache stopwords", zap.String("language", lang), zap.Error(err))
	}
}

func (l *Loader) incSource(source string) {
	if l.sourceTotal != nil {
		l.sourceTotal.WithLabelValues(source).Inc()
	}
}

func (l *Loader) lookup(lang string) (Set, bool) {
	l.stateMu.RLock()
	defer l.stateMu.RUnlock()
	s, ok := l.loaded[lang]
	return s, ok
}

// Loaded reports whether a Set for lang has been loaded. It does not wait for
// a load in progress.
func (l *Loader) Loaded(lang string) bool {
	_, ok := l.lookup(strings.ToLower(strings.TrimSpace(lang)))
	return ok
}
