// Package source 讀取食譜資料文件（食材目錄、食譜索引、食譜），支援本機目錄與遠端 HTTP，並可疊加快取。
package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"recipe-viewer/internal/core/cache"
	"recipe-viewer/internal/pkg/common"

	"go.uber.org/zap"
)

// Fetcher 依定位字串讀取原始文件
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// FileFetcher 從本機目錄讀取文件
type FileFetcher struct {
	root fs.FS
	dir  string
}

// NewFileFetcher 創建本機目錄讀取器
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{root: os.DirFS(dir), dir: dir}
}

// NewFSFetcher 以任意 fs.FS 創建讀取器（測試或內嵌資料用）
func NewFSFetcher(fsys fs.FS) *FileFetcher {
	return &FileFetcher{root: fsys, dir: "fs"}
}

// Fetch 讀取文件；定位字串不得跳出根目錄
func (f *FileFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.NewFetchError(locator, err)
	}

	start := time.Now()
	name := strings.TrimPrefix(strings.TrimPrefix(locator, "./"), "/")
	if !fs.ValidPath(name) {
		err := errors.New("invalid locator")
		common.LogFetch("file:"+f.dir, locator, time.Since(start), err)
		return nil, common.NewFetchError(locator, err)
	}

	data, err := fs.ReadFile(f.root, name)
	common.LogFetch("file:"+f.dir, locator, time.Since(start), err)
	if err != nil {
		return nil, common.NewFetchError(locator, err)
	}
	return data, nil
}

// CachedFetcher 在讀取器前疊加一或多層快取，依序查詢
type CachedFetcher struct {
	next   Fetcher
	stores []cache.Store
}

// NewCachedFetcher 創建快取讀取器；nil 的快取層會被忽略
func NewCachedFetcher(next Fetcher, stores ...cache.Store) *CachedFetcher {
	cf := &CachedFetcher{next: next}
	for _, s := range stores {
		if s != nil && !isNilStore(s) {
			cf.stores = append(cf.stores, s)
		}
	}
	return cf
}

// Fetch 先查快取，未命中時讀取並回填所有快取層
func (c *CachedFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	for i, s := range c.stores {
		data, err := s.Get(ctx, locator)
		if err == nil {
			// 回填較前面的快取層
			for _, front := range c.stores[:i] {
				c.store(ctx, front, locator, data)
			}
			return data, nil
		}
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("快取讀取失敗", zap.String("locator", locator), zap.Error(err))
		}
	}

	data, err := c.next.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	for _, s := range c.stores {
		c.store(ctx, s, locator, data)
	}
	return data, nil
}

func (c *CachedFetcher) store(ctx context.Context, s cache.Store, locator string, data []byte) {
	if err := s.Set(ctx, locator, data); err != nil {
		common.LogWarn("快取寫入失敗", zap.String("locator", locator), zap.Error(err))
	}
}

// isNilStore 過濾以介面包裝的 nil 指標（例如停用時的 *cache.CacheManager）
func isNilStore(s cache.Store) bool {
	switch v := s.(type) {
	case *cache.CacheManager:
		return v == nil
	case *cache.RedisStore:
		return v == nil
	}
	return false
}
