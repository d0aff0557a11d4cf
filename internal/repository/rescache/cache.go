package rescache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yazarlar/articlekit/internal/db"
	"github.com/yazarlar/articlekit/internal/domain"
	"github.com/yazarlar/articlekit/internal/stopwords"
)

var keyPrefix = domain.KeyPrefix + "stopwords:"

// Compile-time check: Cache implements stopwords.Cache.
var _ stopwords.Cache = (*Cache)(nil)

// store is the consumer interface for the resource cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores stopword lists as newline-separated text in a key-value store.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
}

// New creates a resource cache. ttl <= 0 keeps entries forever.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec) *Cache {
	return &Cache{store: s, ttl: ttl, cacheTotal: cacheTotal}
}

// Get returns the cached list for lang, or db.ErrKeyNotFound.
func (c *Cache) Get(ctx context.Context, lang string) ([]string, error) {
	data, err := c.store.Get(ctx, cacheKey(lang))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			c.inc("miss")
			return nil, db.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get cached stopwords: %w", err)
	}

	words := stopwords.ParseList(string(data))
	if len(words) == 0 {
		c.inc("miss")
		return nil, db.ErrKeyNotFound
	}
	c.inc("hit")
	return words, nil
}

// Put stores words for lang.
func (c *Cache) Put(ctx context.Context, lang string, words []string) error {
	data := []byte(strings.Join(words, "\n") + "\n")
	if err := c.store.SetWithTTL(ctx, cacheKey(lang), data, c.ttl); err != nil {
		return fmt.Errorf("put cached stopwords: %w", err)
	}
	return nil
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(lang string) string {
	return keyPrefix + strings.ToLower(lang)
}
