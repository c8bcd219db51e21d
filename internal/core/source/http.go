package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-viewer/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// HTTPFetcher 從遠端基底 URL 讀取文件
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher 創建 HTTP 讀取器
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "recipe-viewer")

	return &HTTPFetcher{client: client}
}

// Fetch 以 GET 讀取文件，非 200 視為讀取失敗
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	start := time.Now()

	resp, err := f.client.R().
		SetContext(ctx).
		Get(locator)
	if err != nil {
		common.LogFetch("http", locator, time.Since(start), err)
		return nil, common.NewFetchError(locator, err)
	}

	if resp.StatusCode() != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode())
		common.LogFetch("http", locator, time.Since(start), err)
		return nil, common.NewFetchError(locator, err)
	}

	common.LogFetch("http", locator, time.Since(start), nil)
	return resp.Body(), nil
}
