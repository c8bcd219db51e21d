package api

import (
	"context"
	"fmt"
	"time"

	"recipe-viewer/internal/api/handlers/health"
	recipeHandler "recipe-viewer/internal/api/handlers/recipe"
	"recipe-viewer/internal/api/middleware"
	"recipe-viewer/internal/core/cache"
	recipeService "recipe-viewer/internal/core/recipe"
	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 請求體大小限制 (64KB)，只有 /render 接受請求體
	maxBodySize = 64 << 10
	// 未設定時的請求超時
	defaultTimeout = 30 * time.Second
)

// Dependencies 路由所需的服務
type Dependencies struct {
	Service *recipeService.Service
	Cache   *cache.CacheManager // 可為 nil（快取停用）
	Redis   *cache.RedisStore   // 可為 nil（Redis 停用）
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Service == nil {
		return nil, fmt.Errorf("recipe service is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	title := cfg.App.Name
	if title == "" {
		title = "Recipes"
	}
	router.Use(middleware.Recovery(title, "/", "/recipe"))
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// 健康檢查路由（不受請求超時限制）
	healthHandler := newHealthHandler(cfg, deps)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	h := recipeHandler.NewHandler(deps.Service, title, cfg.App.Debug)

	// HTML 頁面
	pages := router.Group("/", middleware.Timeout(timeout))
	{
		pages.GET("/", h.HandleBrowsePage)
		pages.GET("/recipe", h.HandleRecipePage)
	}

	// API 路由組
	api := router.Group("/api/v1", middleware.Timeout(timeout))
	{
		api.GET("/recipes", h.HandleListRecipes)
		api.GET("/recipes/:id", h.HandleGetRecipe)
		api.GET("/ingredients", h.HandleListIngredients)
		api.GET("/scales", h.HandleListScales)
		api.POST("/render", middleware.BodySizeLimit(maxBodySize), h.HandleRender)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("redis_enabled", deps.Redis != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Float64s("scale_presets", deps.Service.Presets()),
		zap.Duration("timeout", timeout),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

// newHealthHandler 組裝健康檢查：食譜索引可讀取，Redis 啟用時需可連線
func newHealthHandler(cfg *config.Config, deps Dependencies) *health.Handler {
	var stats health.StatsProvider
	if deps.Cache != nil {
		stats = deps.Cache
	}
	h := health.NewHandler(cfg.App.Version, stats)

	h.AddCheck("index", func(ctx context.Context) error {
		_, err := deps.Service.Browse(ctx, "")
		return err
	})
	if deps.Redis != nil {
		h.AddCheck("redis", deps.Redis.Ping)
	}
	return h
}
