package common

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// NewErrorResponse 依錯誤類型建立 API 錯誤響應
func NewErrorResponse(err error, debug bool) (int, ErrorResponse) {
	status, code := StatusOf(err)
	resp := ErrorResponse{
		Code:    code,
		Message: http.StatusText(status),
	}
	var ce *CustomError
	if errors.As(err, &ce) {
		resp.Message = ce.Message
	}
	if debug && err != nil {
		resp.Details = err.Error()
	}
	return status, resp
}
