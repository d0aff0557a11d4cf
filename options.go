package articlekit

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	language string

	cacheDriver string // "", "file" or "redis"
	cacheDir    string
	addrs       []string
	password    string
	cacheTTL    time.Duration

	sourceURL string

	threshold    *float64
	topN         int
	likesWeight  *float64
	viewsWeight  *float64
	categories   []CategoryRule
	fallback     string
	maxSentences int

	logger *zap.Logger
}

// WithLanguage selects the stopword list and lowercasing rules. Default "tr".
func WithLanguage(lang string) Option {
	return optionFunc(func(c *clientConfig) {
		c.language = lang
	})
}

// WithFileCache persists downloaded stopword lists under dir.
func WithFileCache(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "file"
		c.cacheDir = dir
	})
}

// WithRedisCache persists downloaded stopword lists in Redis.
func WithRedisCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheTTL expires cached stopword lists after ttl. Zero keeps them forever.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithRemoteSource enables downloading lists that are neither cached nor
// bundled. urlTemplate must contain "{lang}".
func WithRemoteSource(urlTemplate string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sourceURL = urlTemplate
	})
}

// WithSimilarityThreshold sets the minimum score (exclusive) of a match.
func WithSimilarityThreshold(threshold float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = &threshold
	})
}

// WithDefaultTopN sets the match count used when callers pass topN <= 0.
func WithDefaultTopN(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topN = n
	})
}

// WithPopularityWeights sets the like and view weights.
func WithPopularityWeights(likes, views float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.likesWeight = &likes
		c.viewsWeight = &views
	})
}

// WithCategories replaces the built-in keyword table. Rule order decides ties.
func WithCategories(fallback string, rules ...CategoryRule) Option {
	return optionFunc(func(c *clientConfig) {
		c.fallback = fallback
		c.categories = rules
	})
}

// WithSummarySentences sets the sentence count used when callers pass maxSentences <= 0.
func WithSummarySentences(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxSentences = n
	})
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
