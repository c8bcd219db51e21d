package source

import (
	"context"
	"fmt"

	"recipe-viewer/internal/core/catalog"
	"recipe-viewer/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Loader 讀取並解析食譜資料文件
type Loader struct {
	fetcher     Fetcher
	catalogFile string
	indexFile   string
}

// NewLoader 創建資料載入器
func NewLoader(fetcher Fetcher, catalogFile, indexFile string) *Loader {
	return &Loader{
		fetcher:     fetcher,
		catalogFile: catalogFile,
		indexFile:   indexFile,
	}
}

// LoadCatalog 載入食材目錄
func (l *Loader) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	var items []catalog.Ingredient
	if err := l.fetchJSON(ctx, l.catalogFile, &items); err != nil {
		return nil, err
	}
	return catalog.NewCatalog(items), nil
}

// LoadIndex 載入食譜索引
func (l *Loader) LoadIndex(ctx context.Context) (*catalog.Index, error) {
	var entries []catalog.IndexEntry
	if err := l.fetchJSON(ctx, l.indexFile, &entries); err != nil {
		return nil, err
	}
	return catalog.NewIndex(entries), nil
}

// Load 同時載入索引與食材目錄，兩者都成功才返回
func (l *Loader) Load(ctx context.Context) (*catalog.Index, *catalog.Catalog, error) {
	var (
		idx *catalog.Index
		cat *catalog.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		idx, err = l.LoadIndex(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cat, err = l.LoadCatalog(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	common.LogDebug("食譜資料已載入",
		zap.Int("recipes", idx.Len()),
		zap.Int("ingredients", cat.Len()),
	)
	return idx, cat, nil
}

// FetchRecipe 讀取並解析一份食譜文件
func (l *Loader) FetchRecipe(ctx context.Context, locator string) (*catalog.Recipe, error) {
	var r catalog.Recipe
	if err := l.fetchJSON(ctx, locator, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (l *Loader) fetchJSON(ctx context.Context, locator string, v interface{}) error {
	data, err := l.fetcher.Fetch(ctx, locator)
	if err != nil {
		return err
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		return common.NewFetchError(locator, fmt.Errorf("decode: %w", err))
	}
	return nil
}
