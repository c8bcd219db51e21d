package middleware

import (
	"context"
	"errors"
	"time"

	"recipe-viewer/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeout 為每個請求設置超時；處理器尚未寫出響應時返回 504
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		common.LogError("Request timeout",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
			zap.Duration("timeout", d),
		)
		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(common.ErrGatewayTimeout.Status, common.ErrorResponse{
			Code:    common.ErrCodeGatewayTimeout,
			Message: common.ErrGatewayTimeout.Message,
			Details: d.String(),
		})
	}
}
