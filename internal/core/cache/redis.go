package cache

import (
	"context"
	"errors"
	"fmt"

	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

var _ Store = (*RedisStore)(nil)

// RedisStore Redis 文件快取
type RedisStore struct {
	client *redis.Client
	config config.RedisConfig
}

// NewRedisStore 創建 Redis 快取並測試連線
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存，未命中時返回 ErrCacheMiss
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.LogCacheMiss("redis", key)
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	common.LogCacheHit("redis", key)
	return data, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Ping 檢查連線（就緒檢查用）
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// key 生成緩存鍵
func (s *RedisStore) key(k string) string {
	return s.config.Prefix + k
}
