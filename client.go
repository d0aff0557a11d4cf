package articlekit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yazarlar/articlekit/internal/db"
	dbFile "github.com/yazarlar/articlekit/internal/db/file"
	dbRedis "github.com/yazarlar/articlekit/internal/db/redis"
	"github.com/yazarlar/articlekit/internal/domain"
	"github.com/yazarlar/articlekit/internal/domain/article"
	"github.com/yazarlar/articlekit/internal/domain/category"
	"github.com/yazarlar/articlekit/internal/domain/popularity"
	"github.com/yazarlar/articlekit/internal/repository/rescache"
	"github.com/yazarlar/articlekit/internal/stopwords"
	"github.com/yazarlar/articlekit/internal/text"
	"github.com/yazarlar/articlekit/internal/transport/fetch"
	categoryuc "github.com/yazarlar/articlekit/internal/usecase/category"
	popularityuc "github.com/yazarlar/articlekit/internal/usecase/popularity"
	similarityuc "github.com/yazarlar/articlekit/internal/usecase/similarity"
	summaryuc "github.com/yazarlar/articlekit/internal/usecase/summary"
)

const (
	defaultLanguage         = "tr"
	defaultReadinessTimeout = 10 * time.Second
)

// ErrStopwordsUnavailable is returned by New when no source can provide the
// stopword list for the configured language.
var ErrStopwordsUnavailable = stopwords.ErrUnavailable

// ErrInvalidArticle is returned by FindSimilar when a candidate fails
// validation, e.g. its content exceeds MaxContentSize.
var ErrInvalidArticle = domain.ErrInvalidDocument

// MaxContentSize is the largest article content, in bytes, FindSimilar accepts.
const MaxContentSize = article.MaxContentSize

// Client is the articlekit entry point. It is safe for concurrent use.
type Client struct {
	store         db.Store
	stopwords     stopwords.Set
	summarySvc    *summaryuc.Service
	similaritySvc *similarityuc.Service
	categorySvc   *categoryuc.Service
	popularitySvc *popularityuc.Service
}

// New resolves the stopword list and builds a Client.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{language: defaultLanguage}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	cfg.language = strings.ToLower(strings.TrimSpace(cfg.language))

	store, err := createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := wireClient(ctx, store, cfg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.cacheDriver {
	case "":
		return nil, nil
	case "file":
		s, err := dbFile.NewStore(cfg.cacheDir)
		if err != nil {
			return nil, fmt.Errorf("articlekit: create file cache: %w", err)
		}
		return s, nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("articlekit: create redis cache: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("articlekit: redis not ready: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("articlekit: unknown cache driver %q", cfg.cacheDriver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig) (*Client, error) {
	var cache stopwords.Cache
	if store != nil {
		cache = rescache.New(store, cfg.cacheTTL, nil)
	}
	var fetcher stopwords.Fetcher
	if cfg.sourceURL != "" {
		fetcher = fetch.New(&fetch.Config{URLTemplate: cfg.sourceURL, Logger: cfg.logger})
	}

	stop, err := stopwords.NewLoader(cache, fetcher, nil, cfg.logger).Load(ctx, cfg.language)
	if err != nil {
		return nil, fmt.Errorf("articlekit: %w", err)
	}

	table, err := buildTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("articlekit: %w", err)
	}

	weights := popularity.DefaultWeights()
	if cfg.likesWeight != nil {
		weights = popularity.Weights{Likes: *cfg.likesWeight, Views: *cfg.viewsWeight}
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("articlekit: %w", err)
	}

	simCfg := similarityuc.DefaultConfig()
	if cfg.threshold != nil {
		if t := *cfg.threshold; t < 0 || t >= 1 {
			return nil, fmt.Errorf("articlekit: similarity threshold must be in [0, 1), got %v", t)
		}
		simCfg.Threshold = *cfg.threshold
	}
	if cfg.topN > 0 {
		simCfg.TopN = cfg.topN
	}

	return &Client{
		store:     store,
		stopwords: stop,
		summarySvc: summaryuc.New(text.SentenceSplitter{}, cfg.logger).
			WithConfig(summaryuc.Config{MaxSentences: cfg.maxSentences}),
		similaritySvc: similarityuc.New(similarityuc.NewTFIDF(stop), cfg.logger).WithConfig(simCfg),
		categorySvc:   categoryuc.New(table),
		popularitySvc: popularityuc.New(weights, 0),
	}, nil
}

func buildTable(cfg *clientConfig) (category.Table, error) {
	if len(cfg.categories) == 0 {
		return category.NewTable(category.DefaultEntries(), cfg.fallback)
	}
	entries := make([]category.Entry, len(cfg.categories))
	for i, r := range cfg.categories {
		entries[i] = category.Entry{Label: r.Label, Keywords: r.Keywords}
	}
	return category.NewTable(entries, cfg.fallback)
}

// Close releases the resource cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Language returns the language of the loaded stopword list.
func (c *Client) Language() string { return c.stopwords.Language() }

// Summarize returns the first maxSentences sentences of text. It never fails:
// on internal errors it returns a truncated prefix of text.
func (c *Client) Summarize(ctx context.Context, text string, maxSentences int) string {
	return c.summarySvc.Summarize(ctx, text, maxSentences)
}

// FindSimilar returns up to topN candidates related to query, best first.
// Every candidate weighs into the IDF corpus, so an invalid one fails the
// whole call with ErrInvalidArticle rather than silently shifting the scores
// of the others.
func (c *Client) FindSimilar(ctx context.Context, query string, candidates []Article, topN int) ([]Match, error) {
	docs := make([]article.Document, 0, len(candidates))
	for i, a := range candidates {
		d, err := article.New(a.ID, a.Content, a.Metadata)
		if err != nil {
			return nil, fmt.Errorf("articlekit: candidates[%d]: %w", i, err)
		}
		docs = append(docs, d)
	}

	results := c.similaritySvc.FindSimilar(ctx, query, docs, topN)
	out := make([]Match, len(results))
	for i := range results {
		d := results[i].Document()
		out[i] = Match{Article: toArticle(&d), Score: results[i].Score()}
	}
	return out, nil
}

// SuggestCategory returns the best matching category label, or the fallback label.
func (c *Client) SuggestCategory(title, content string) string {
	return c.categorySvc.Suggest(title, content)
}

// CategoryScores returns the keyword hit count per matching label.
func (c *Client) CategoryScores(title, content string) map[string]int {
	return c.categorySvc.Scores(title, content)
}

// ResolveCategory returns the taxonomy records whose name contains label.
func (c *Client) ResolveCategory(label string, taxonomy []Category) []Category {
	return c.categorySvc.Resolve(label, taxonomy)
}

// Top orders articles by weighted likes and views, returning at most limit.
func (c *Client) Top(entries []Engagement, limit int) []Popular {
	in := make([]popularity.Entry, len(entries))
	for i, e := range entries {
		in[i] = popularity.Entry{
			Document: article.Reconstruct(e.Article.ID, e.Article.Content, e.Article.Metadata),
			Likes:    e.Likes,
			Views:    e.Views,
		}
	}

	ranked := c.popularitySvc.Top(in, limit)
	out := make([]Popular, len(ranked))
	for i := range ranked {
		out[i] = Popular{Article: toArticle(&ranked[i].Entry.Document), Score: ranked[i].Score}
	}
	return out
}

// IsUnavailable reports whether err means no stopword source was usable.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStopwordsUnavailable)
}

func toArticle(d *article.Document) Article {
	return Article{ID: d.ID(), Content: d.Content(), Metadata: d.Metadata()}
}
