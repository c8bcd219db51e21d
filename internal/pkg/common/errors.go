package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 errors.Is(err, ErrNotFound) 對任何 NOT_FOUND 錯誤成立
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// NewNotFoundError 創建查無資料錯誤（食譜索引或食材目錄）
func NewNotFoundError(kind, id string) *CustomError {
	return NewError(ErrCodeNotFound, fmt.Sprintf("%s %q not found", kind, id), http.StatusNotFound, nil)
}

// NewFetchError 創建資料讀取錯誤
func NewFetchError(locator string, err error) *CustomError {
	return NewError(ErrCodeFetchFailed, fmt.Sprintf("failed to fetch %s", locator), http.StatusBadGateway, err)
}

// NewInvalidRequestError 創建無效請求錯誤
func NewInvalidRequestError(message string) *CustomError {
	return NewError(ErrCodeInvalidRequest, message, http.StatusBadRequest, nil)
}

// StatusOf 取得錯誤對應的 HTTP 狀態碼與錯誤代碼
func StatusOf(err error) (int, string) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status, ce.Code
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError  = "INTERNAL_ERROR"  // 500
	ErrCodeFetchFailed    = "FETCH_FAILED"    // 502
	ErrCodeGatewayTimeout = "GATEWAY_TIMEOUT" // 504
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError  = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrFetchFailed    = NewError(ErrCodeFetchFailed, "資料讀取失敗", http.StatusBadGateway, nil)
	ErrGatewayTimeout = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrCacheMiss    = NewError("CACHE_MISS", "快取未命中", http.StatusNotFound, nil)
	ErrCacheFull    = NewError("CACHE_FULL", "緩存已滿", http.StatusServiceUnavailable, nil)
	ErrInvalidScale = NewError("INVALID_SCALE", "不支援的份量倍率", http.StatusBadRequest, nil)
)
