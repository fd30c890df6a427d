package processing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	values  map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	setKeys []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.setKeys = append(m.setKeys, key)
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCachedFetcher(next Fetcher, cache ListingCache) *CachedFetcher {
	return NewCachedFetcher(next, cache, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestListingKey(t *testing.T) {
	assert.Equal(t, "reddit:listing:golang:top:25", ListingKey("GoLang", models.SortTop, 25))
}

func TestCachedFetcher_MissThenHit(t *testing.T) {
	next := &fakeFetcher{posts: samplePosts()}
	cache := newMemoryCache()
	cf := newTestCachedFetcher(next, cache)

	first, err := cf.FetchPosts(context.Background(), "golang", 3, models.SortHot)
	require.NoError(t, err)
	second, err := cf.FetchPosts(context.Background(), "golang", 3, models.SortHot)
	require.NoError(t, err)

	assert.Equal(t, 1, next.postCalls)
	assert.Equal(t, first, second)
	assert.Equal(t, time.Minute, cache.ttls[ListingKey("golang", models.SortHot, 3)])
}

func TestCachedFetcher_DifferentSortIsDifferentKey(t *testing.T) {
	next := &fakeFetcher{posts: samplePosts()}
	cf := newTestCachedFetcher(next, newMemoryCache())

	_, _ = cf.FetchPosts(context.Background(), "golang", 3, models.SortHot)
	_, _ = cf.FetchPosts(context.Background(), "golang", 3, models.SortNew)

	assert.Equal(t, 2, next.postCalls)
}

func TestCachedFetcher_CacheErrorsFallThrough(t *testing.T) {
	next := &fakeFetcher{posts: samplePosts()}
	cache := newMemoryCache()
	cache.getErr = errors.New("valkey down")
	cache.setErr = errors.New("valkey down")

	posts, err := newTestCachedFetcher(next, cache).FetchPosts(context.Background(), "golang", 3, models.SortHot)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestCachedFetcher_CorruptEntryIsRefetched(t *testing.T) {
	next := &fakeFetcher{posts: samplePosts()}
	cache := newMemoryCache()
	cache.values[ListingKey("golang", models.SortHot, 3)] = []byte("not json")

	posts, err := newTestCachedFetcher(next, cache).FetchPosts(context.Background(), "golang", 3, models.SortHot)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, 1, next.postCalls)
}

func TestCachedFetcher_EmptyListingNotCached(t *testing.T) {
	cache := newMemoryCache()

	_, err := newTestCachedFetcher(&fakeFetcher{}, cache).FetchPosts(context.Background(), "golang", 3, models.SortHot)
	require.NoError(t, err)
	assert.Empty(t, cache.setKeys)
}

func TestCachedFetcher_CommentsBypassCache(t *testing.T) {
	next := &fakeFetcher{comments: map[string][]models.RawComment{"abc": {{Body: "hi"}}}}
	cache := newMemoryCache()

	comments, err := newTestCachedFetcher(next, cache).FetchComments(context.Background(), "abc", 10)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Empty(t, cache.setKeys)
}
