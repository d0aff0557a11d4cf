// Package fetch downloads stopword lists from a remote location.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/yazarlar/articlekit/internal/metrics"
	"github.com/yazarlar/articlekit/internal/stopwords"
)

// LangPlaceholder is replaced by the language code in URL templates.
const LangPlaceholder = "{lang}"

// ErrUnexpectedStatus is returned for non-retryable HTTP responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Compile-time check: Client implements stopwords.Fetcher.
var _ stopwords.Fetcher = (*Client)(nil)

// Config holds the fetcher settings.
type Config struct {
	URLTemplate string
	Timeout     time.Duration
	MaxRetries  uint64
	BaseBackoff time.Duration
	Logger      *zap.Logger
}

// Client fetches plain-text word lists (one word per line) over HTTP.
type Client struct {
	http        *resty.Client
	urlTemplate string
	maxRetries  uint64
	baseBackoff time.Duration
	logger      *zap.Logger
}

// New creates a fetch client.
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	backoff := cfg.BaseBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "text/plain"),
		urlTemplate: cfg.URLTemplate,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: backoff,
		logger:      logger,
	}
}

// URL returns the resource location for lang.
func (c *Client) URL(lang string) string {
	return strings.ReplaceAll(c.urlTemplate, LangPlaceholder, url.PathEscape(lang))
}

// Fetch downloads and parses the list for lang. Network errors, 5xx, 408 and
// 429 are retried with exponential backoff; other statuses fail immediately.
func (c *Client) Fetch(ctx context.Context, lang string) ([]string, error) {
	if c.urlTemplate == "" {
		return nil, fmt.Errorf("fetch %s: no source url configured", lang)
	}
	target := c.URL(lang)

	start := time.Now()
	defer func() { metrics.ResourceFetchDuration.Observe(time.Since(start).Seconds()) }()

	var body string
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.baseBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.http.R().SetContext(ctx).Get(target)
		if err != nil {
			metrics.ResourceFetchTotal.WithLabelValues("retry").Inc()
			c.logger.Debug("Stopword fetch failed, retrying", zap.String("url", target), zap.Error(err))
			return retry.RetryableError(fmt.Errorf("request %s: %w", target, err))
		}

		code := resp.StatusCode()
		switch {
		case code == http.StatusOK:
			body = resp.String()
			return nil
		case isRetryableStatus(code):
			metrics.ResourceFetchTotal.WithLabelValues("retry").Inc()
			c.logger.Debug("Stopword fetch got retryable status", zap.String("url", target), zap.Int("status", code))
			return retry.RetryableError(fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, code, target))
		default:
			return fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, code, target)
		}
	})
	if err != nil {
		metrics.ResourceFetchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch stopwords %s: %w", lang, err)
	}

	metrics.ResourceFetchTotal.WithLabelValues("success").Inc()
	words := stopwords.ParseList(body)
	c.logger.Info("Fetched stopwords",
		zap.String("language", lang),
		zap.String("url", target),
		zap.Int("words", len(words)),
	)
	return words, nil
}

func isRetryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}
