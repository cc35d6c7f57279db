package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/cache"
)

const postingHTML = `<html><body><nav>Jobs home</nav>
<main><h1>Backend Engineer</h1><ul><li>Go</li><li>Kubernetes</li></ul></main>
</body></html>`

func newPostingServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
}

func TestCachedFetcher_CachesByURL(t *testing.T) {
	var hits atomic.Int32
	server := newPostingServer(t, &hits)
	defer server.Close()

	f := NewCachedFetcher(cache.NewMemoryCache(0), nil, nil)
	ctx := context.Background()

	first, err := f.Fetch(ctx, server.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Contains(t, first.Text, "Kubernetes")
	assert.NotContains(t, first.Text, "Jobs home")

	second, err := f.Fetch(ctx, server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Text, second.Text)
	assert.Empty(t, second.HTML)

	assert.Equal(t, int32(1), hits.Load())
}

func TestCachedFetcher_NilCacheAlwaysFetches(t *testing.T) {
	var hits atomic.Int32
	server := newPostingServer(t, &hits)
	defer server.Close()

	f := NewCachedFetcher(nil, nil, nil)
	for i := 0; i < 2; i++ {
		got, err := f.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.False(t, got.FromCache)
	}
	assert.Equal(t, int32(2), hits.Load())
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("db down")
}
func (failingCache) Set(context.Context, string, []byte) error { return errors.New("db down") }
func (failingCache) Clear(context.Context) error { return nil }

func TestCachedFetcher_CacheErrorsIgnored(t *testing.T) {
	var hits atomic.Int32
	server := newPostingServer(t, &hits)
	defer server.Close()

	f := NewCachedFetcher(failingCache{}, nil, nil)
	got, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, got.Text, "Backend Engineer")
}

func TestCachedFetcher_FetchErrorNotCached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	mem := cache.NewMemoryCache(0)
	f := NewCachedFetcher(mem, nil, nil)
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, 0, mem.Len())
}
