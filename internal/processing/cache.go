package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	LISTING_KEY_PREFIX = "reddit:listing"
	DEFAULT_CACHE_TTL  = 5 * time.Minute
)

// ListingCache stores raw bytes with an expiry.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedFetcher serves post listings from a cache when possible. Comments
// always go to the wrapped fetcher. Cache errors never fail a fetch.
type CachedFetcher struct {
	next   Fetcher
	cache  ListingCache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedFetcher(next Fetcher, cache ListingCache, ttl time.Duration, logger *slog.Logger) *CachedFetcher {
	if ttl <= 0 {
		ttl = DEFAULT_CACHE_TTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedFetcher{next: next, cache: cache, ttl: ttl, logger: logger}
}

func ListingKey(subreddit string, sort models.SortMode, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%d", LISTING_KEY_PREFIX, strings.ToLower(subreddit), sort, limit)
}

func (cf *CachedFetcher) FetchPosts(ctx context.Context, subreddit string, limit int, sort models.SortMode) ([]models.RawPost, error) {
	key := ListingKey(subreddit, sort, limit)

	cached, ok, err := cf.cache.Get(ctx, key)
	if err != nil {
		cf.logger.Warn("[CachedFetcher] Cache read failed, fetching live",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	if ok {
		var posts []models.RawPost
		if err := json.Unmarshal(cached, &posts); err == nil {
			cf.logger.Debug("[CachedFetcher] Serving cached listing", slog.String("key", key))
			return posts, nil
		}
		cf.logger.Warn("[CachedFetcher] Ignoring corrupt cache entry", slog.String("key", key))
	}

	posts, err := cf.next.FetchPosts(ctx, subreddit, limit, sort)
	if err != nil {
		return nil, err
	}

	// empty listings are not cached so a transient empty result is retried
	if len(posts) > 0 {
		if b, err := json.Marshal(posts); err == nil {
			if err := cf.cache.Set(ctx, key, b, cf.ttl); err != nil {
				cf.logger.Warn("[CachedFetcher] Cache write failed",
					slog.String("key", key),
					slog.String("error", err.Error()))
			}
		}
	}

	return posts, nil
}

func (cf *CachedFetcher) FetchComments(ctx context.Context, postID string, limit int) ([]models.RawComment, error) {
	return cf.next.FetchComments(ctx, postID, limit)
}
