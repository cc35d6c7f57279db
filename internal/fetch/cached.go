package fetch

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/jonathan/resume-scorer/internal/cache"
)

// cacheNamespace prefixes job posting keys in the shared score cache
const cacheNamespace = "jd_url"

// CachedFetcher wraps job posting fetches with a cache keyed by URL.
type CachedFetcher struct {
	cache   cache.Cache
	options *Options
	logger  *slog.Logger
}

// NewCachedFetcher creates a new cached fetcher. A nil cache disables caching.
func NewCachedFetcher(c cache.Cache, opts *Options, logger *slog.Logger) *CachedFetcher {
	if c == nil {
		c = cache.Noop{}
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedFetcher{cache: c, options: opts, logger: logger}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// cachedPage is the stored form; raw HTML is not kept
type cachedPage struct {
	URL        string   `json:"url"`
	Text       string   `json:"text"`
	StatusCode int      `json:"status_code"`
	Platform   Platform `json:"platform"`
}

// Fetch returns the posting text, from cache when present. Cache failures are
// logged and never fail the fetch.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	urlStr = strings.TrimSpace(urlStr)
	key := cache.Namespaced(cacheNamespace, urlStr)

	raw, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		f.logger.WarnContext(ctx, "job posting cache lookup failed", "url", urlStr, "error", err)
	}
	if ok {
		var page cachedPage
		if err := json.Unmarshal(raw, &page); err == nil && page.Text != "" {
			return &CachedResult{
				Result: &Result{
					URL:        page.URL,
					Text:       page.Text,
					StatusCode: page.StatusCode,
					Platform:   page.Platform,
				},
				FromCache: true,
			}, nil
		}
	}

	result, err := JobPosting(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	stored, err := json.Marshal(cachedPage{
		URL:        result.URL,
		Text:       result.Text,
		StatusCode: result.StatusCode,
		Platform:   result.Platform,
	})
	if err == nil {
		err = f.cache.Set(ctx, key, stored)
	}
	if err != nil {
		f.logger.WarnContext(ctx, "job posting cache store failed", "url", urlStr, "error", err)
	}

	return &CachedResult{Result: result}, nil
}
