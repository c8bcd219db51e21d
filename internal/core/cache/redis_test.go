package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStore(ctx, config.RedisConfig{
		Addr:   mr.Addr(),
		TTL:    time.Minute,
		Prefix: "test:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Get(ctx, "recipes/bread.json")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, s.Set(ctx, "recipes/bread.json", []byte(`{"id":"bread"}`)))
	assert.True(t, mr.Exists("test:recipes/bread.json"))

	got, err := s.Get(ctx, "recipes/bread.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"bread"}`, string(got))

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, "recipes/bread.json")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	assert.NoError(t, s.Ping(ctx))
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
