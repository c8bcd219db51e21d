package health

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"recipe-viewer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Check 就緒檢查項目，返回錯誤表示未就緒
type Check func(ctx context.Context) error

// StatsProvider 提供快取統計
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// ReadinessResponse 就緒檢查響應
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Handler 健康檢查處理器
type Handler struct {
	version string
	stats   StatsProvider
	checks  map[string]Check
	timeout time.Duration
}

// NewHandler 創建健康檢查處理器；stats 可為 nil
func NewHandler(version string, stats StatsProvider) *Handler {
	return &Handler{
		version: version,
		stats:   stats,
		checks:  make(map[string]Check),
		timeout: 5 * time.Second,
	}
}

// AddCheck 註冊就緒檢查項目
func (h *Handler) AddCheck(name string, check Check) {
	h.checks[name] = check
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.stats != nil {
		response.Cache = h.stats.GetStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器：所有檢查項目通過才返回 200
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			common.LogWarn("就緒檢查失敗", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = err.Error()
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	c.JSON(status, resp)
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
