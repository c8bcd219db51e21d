package recipe

import (
	"net/http"

	"recipe-viewer/internal/pkg/common"
	"recipe-viewer/internal/web/templates"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

// requestIDOf 取得請求 ID，缺少時生成並寫回響應頭
func requestIDOf(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	id := common.GenerateUUID()
	c.Header("X-Request-ID", id)
	return id
}

// writeJSONError 以 JSON 錯誤響應結束請求
func (h *Handler) writeJSONError(c *gin.Context, requestID string, err error) {
	status, resp := common.NewErrorResponse(err, h.debug)
	h.logFailure(c, requestID, status, err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// writeHTMLError 以錯誤頁面結束請求，不輸出部分渲染的內容
func (h *Handler) writeHTMLError(c *gin.Context, requestID string, err error) {
	status, resp := common.NewErrorResponse(err, h.debug)
	h.logFailure(c, requestID, status, err)
	_ = c.Error(err)

	page, renderErr := templates.RenderErrorPage(templates.NewErrorPage(h.title, status, resp.Code, resp.Message))
	if renderErr != nil {
		common.LogError("錯誤頁面渲染失敗", zap.Error(renderErr), zap.String("request_id", requestID))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, htmlContentType, page)
	c.Abort()
}

func (h *Handler) logFailure(c *gin.Context, requestID string, status int, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestID),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
		return
	}
	common.LogWarn("請求處理失敗", fields...)
}
