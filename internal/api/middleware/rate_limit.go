package middleware

import (
	"fmt"
	"sync"
	"time"

	"recipe-viewer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter 令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64 // 每秒補充的令牌數
	lastTime time.Time
	now      func() time.Time
}

// NewRateLimiter 創建新的限流器：每個 window 最多 requests 次請求
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:   float64(requests),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		lastTime: time.Now(),
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastTime).Seconds()
	rl.lastTime = now

	// 補充令牌（保留小數部分，避免高頻請求時永遠補不到整數個）
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}

	return false
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return rateLimit(NewRateLimiter(requests, window), window)
}

func rateLimit(limiter *RateLimiter, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			common.LogWarn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(common.ErrTooManyRequests.Status, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: common.ErrTooManyRequests.Message,
			})
			return
		}

		c.Next()
	}
}
