package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"recipe-viewer/internal/core/cache"
	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/ingredients.json": {Data: []byte(`[
			{"id": "flour", "name": "Flour", "units": "g"},
			{"id": "butter", "name": "Butter", "units": "g"}
		]`)},
		"data/recipe-index.json": {Data: []byte(`[
			{"id": "bread", "name": "Bread", "category": "Baking", "file": "data/recipes/bread.json"}
		]`)},
		"data/recipes/bread.json": {Data: []byte(`{
			"id": "bread", "name": "Bread",
			"ingredients": [{"ingredientId": "flour", "totalQty": 500}],
			"steps": [{"text": "Knead"}]
		}`)},
		"data/broken.json": {Data: []byte(`{"id": `)},
	}
}

func TestFileFetcher(t *testing.T) {
	f := NewFSFetcher(testFS())
	ctx := context.Background()

	tests := []struct {
		name    string
		locator string
		wantErr bool
	}{
		{"relative", "data/ingredients.json", false},
		{"dot slash", "./data/ingredients.json", false},
		{"leading slash", "/data/ingredients.json", false},
		{"missing", "data/nope.json", true},
		{"traversal", "../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := f.Fetch(ctx, tt.locator)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrFetchFailed))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestFileFetcherCancelledContext(t *testing.T) {
	f := NewFSFetcher(testFS())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "data/ingredients.json")
	assert.True(t, errors.Is(err, common.ErrFetchFailed))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/ingredients.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"salt","name":"Salt","units":"g"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 5*time.Second)
	ctx := context.Background()

	data, err := f.Fetch(ctx, "data/ingredients.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Salt")

	_, err = f.Fetch(ctx, "data/missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrFetchFailed))
	assert.Contains(t, err.Error(), "404")
}

type countingFetcher struct {
	next  Fetcher
	calls atomic.Int32
}

func (c *countingFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	c.calls.Add(1)
	return c.next.Fetch(ctx, locator)
}

func TestCachedFetcherServesFromCache(t *testing.T) {
	mem := cache.NewManager(config.CacheConfig{
		Enabled: true, MaxSize: 10, TTL: time.Minute, CleanupInterval: time.Hour,
	})
	defer mem.Close()

	counter := &countingFetcher{next: NewFSFetcher(testFS())}
	f := NewCachedFetcher(counter, mem)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.Fetch(ctx, "data/ingredients.json")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), counter.calls.Load())

	// 讀取失敗不寫入快取
	for i := 0; i < 2; i++ {
		_, err := f.Fetch(ctx, "data/nope.json")
		require.Error(t, err)
	}
	assert.Equal(t, int32(3), counter.calls.Load())
}

func TestCachedFetcherIgnoresDisabledStores(t *testing.T) {
	var disabled *cache.CacheManager
	counter := &countingFetcher{next: NewFSFetcher(testFS())}
	f := NewCachedFetcher(counter, disabled, nil)

	_, err := f.Fetch(context.Background(), "data/ingredients.json")
	require.NoError(t, err)
	assert.Empty(t, f.stores)
}

func TestLoaderLoad(t *testing.T) {
	l := NewLoader(NewFSFetcher(testFS()), "data/ingredients.json", "data/recipe-index.json")

	idx, cat, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 2, cat.Len())

	entry, err := idx.Lookup("bread")
	require.NoError(t, err)

	r, err := l.FetchRecipe(context.Background(), entry.File)
	require.NoError(t, err)
	assert.Equal(t, "Bread", r.Name)
	assert.Equal(t, 500.0, r.Ingredients[0].TotalQty)
}

func TestLoaderLoadFailsWhenEitherDocumentFails(t *testing.T) {
	tests := []struct {
		name        string
		catalogFile string
		indexFile   string
	}{
		{"missing catalog", "data/none.json", "data/recipe-index.json"},
		{"missing index", "data/ingredients.json", "data/none.json"},
		{"broken index", "data/ingredients.json", "data/broken.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(NewFSFetcher(testFS()), tt.catalogFile, tt.indexFile)
			idx, cat, err := l.Load(context.Background())
			require.Error(t, err)
			assert.Nil(t, idx)
			assert.Nil(t, cat)
			assert.True(t, errors.Is(err, common.ErrFetchFailed))
		})
	}
}
