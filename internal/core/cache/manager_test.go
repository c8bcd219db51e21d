package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int) (*CacheManager, *time.Time) {
	t.Helper()
	m := NewManager(config.CacheConfig{
		Enabled:         true,
		MaxSize:         maxSize,
		TTL:             time.Minute,
		CleanupInterval: time.Hour,
	})
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Close() })

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestNewManagerDisabled(t *testing.T) {
	assert.Nil(t, NewManager(config.CacheConfig{Enabled: false}))
}

func TestManagerGetSet(t *testing.T) {
	m, _ := newTestManager(t, 10)
	ctx := context.Background()

	_, err := m.Get(ctx, "index.json")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, m.Set(ctx, "index.json", []byte(`[]`)))
	got, err := m.Get(ctx, "index.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}

func TestManagerExpiry(t *testing.T) {
	m, now := newTestManager(t, 10)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	*now = now.Add(2 * time.Minute)

	_, err := m.Get(ctx, "a")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))
	assert.Equal(t, 0, m.GetStats()["size"])
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	m, now := newTestManager(t, 2)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	*now = now.Add(time.Second)
	require.NoError(t, m.Set(ctx, "b", []byte("2")))

	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", []byte("3")))

	_, err = m.Get(ctx, "b")
	assert.True(t, errors.Is(err, common.ErrCacheMiss), "least used entry should be evicted")
	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestManagerOverwriteDoesNotEvict(t *testing.T) {
	m, _ := newTestManager(t, 1)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "a", []byte("2")))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}
