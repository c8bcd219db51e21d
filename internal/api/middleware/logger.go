package middleware

import (
	"time"

	"recipe-viewer/internal/pkg/common"
	"recipe-viewer/internal/web/templates"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger 日誌中間件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// 處理請求
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("latency", latency),
			zap.String("request_id", requestid.Get(c)),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		// 根據狀態碼記錄不同級別的日誌
		switch {
		case status >= 500:
			common.LogError("伺服器錯誤",
				append(fields, zap.String("error_type", "server_error"))...,
			)
		case status >= 400:
			common.LogWarn("用戶端錯誤",
				append(fields, zap.String("error_type", "client_error"))...,
			)
		case status >= 300:
			common.LogInfo("重新導向",
				append(fields, zap.String("error_type", "redirect"))...,
			)
		default:
			common.LogInfo("請求完成", fields...)
		}
	}
}

// Recovery 恢復中間件；pagePaths 內的路由回傳 HTML 錯誤頁，其餘回傳 JSON
func Recovery(title string, pagePaths ...string) gin.HandlerFunc {
	pages := make(map[string]struct{}, len(pagePaths))
	for _, p := range pagePaths {
		pages[p] = struct{}{}
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				common.LogError("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", requestid.Get(c)),
				)

				if _, ok := pages[c.FullPath()]; ok {
					page, renderErr := templates.RenderErrorPage(templates.NewErrorPage(
						title,
						common.ErrInternalError.Status,
						common.ErrCodeInternalError,
						common.ErrInternalError.Message,
					))
					if renderErr == nil {
						c.Data(common.ErrInternalError.Status, "text/html; charset=utf-8", page)
						c.Abort()
						return
					}
					common.LogError("Failed to render error page", zap.Error(renderErr))
				}

				c.AbortWithStatusJSON(common.ErrInternalError.Status, common.ErrorResponse{
					Code:    common.ErrCodeInternalError,
					Message: common.ErrInternalError.Message,
				})
			}
		}()

		c.Next()
	}
}
