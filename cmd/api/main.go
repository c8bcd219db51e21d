package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-viewer/internal/api"
	"recipe-viewer/internal/core/cache"
	"recipe-viewer/internal/core/recipe"
	"recipe-viewer/internal/core/source"
	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含選用的 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("data_source", cfg.Data.Source),
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("data_base_url", cfg.Data.BaseURL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Float64s("scale_presets", cfg.Scale.Presets),
	)

	// 初始化記憶體快取（停用時為 nil）
	cacheManager := cache.NewManager(cfg.Cache)
	defer cacheManager.Close()

	// Redis 為選用，連線失敗只降級不中止
	var redisStore *cache.RedisStore
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStore, err = cache.NewRedisStore(ctx, cfg.Redis)
		cancel()
		if err != nil {
			common.LogWarn("Redis 不可用，僅使用記憶體快取", zap.Error(err))
			redisStore = nil
		} else {
			defer redisStore.Close()
		}
	}

	fetcher, err := newFetcher(cfg.Data)
	if err != nil {
		common.LogFatal("Failed to create data fetcher", zap.Error(err))
	}
	cached := source.NewCachedFetcher(fetcher, cacheManager, redisStore)
	loader := source.NewLoader(cached, cfg.Data.CatalogFile, cfg.Data.IndexFile)
	svc := recipe.NewService(loader, cfg.Scale.Presets)

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Dependencies{
		Service: svc,
		Cache:   cacheManager,
		Redis:   redisStore,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}

// newFetcher 依設定選擇資料來源
func newFetcher(cfg config.DataConfig) (source.Fetcher, error) {
	switch cfg.Source {
	case config.SourceFile:
		return source.NewFileFetcher(cfg.Dir), nil
	case config.SourceHTTP:
		return source.NewHTTPFetcher(cfg.BaseURL, cfg.FetchTimeout), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Source)
	}
}
