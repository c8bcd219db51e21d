package recipe

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"recipe-viewer/internal/core/catalog"
	"recipe-viewer/internal/pkg/common"

	"go.uber.org/zap"
)

// DataLoader 載入食譜資料文件
type DataLoader interface {
	RecipeFetcher
	Load(ctx context.Context) (*catalog.Index, *catalog.Catalog, error)
	LoadIndex(ctx context.Context) (*catalog.Index, error)
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
}

// Service 食譜瀏覽服務
type Service struct {
	loader   DataLoader
	resolver *Resolver
	presets  []float64
}

// NewService 創建食譜瀏覽服務
func NewService(loader DataLoader, presets []float64) *Service {
	return &Service{
		loader:   loader,
		resolver: NewResolver(loader),
		presets:  append([]float64(nil), presets...),
	}
}

// Presets 返回可選的份量倍率
func (s *Service) Presets() []float64 {
	return append([]float64(nil), s.presets...)
}

// DefaultScale 預設倍率：1 在可選倍率中時為 1，否則為第一個可選倍率
func (s *Service) DefaultScale() float64 {
	for _, p := range s.presets {
		if p == 1 {
			return 1
		}
	}
	if len(s.presets) == 0 {
		return 1
	}
	return s.presets[0]
}

// CheckScale 檢查倍率是否為可選倍率之一
func (s *Service) CheckScale(scale float64) error {
	for _, p := range s.presets {
		if p == scale {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidScale, strconv.FormatFloat(scale, 'g', -1, 64))
}

// ParseScale 解析查詢字串中的倍率，空值返回預設倍率
func (s *Service) ParseScale(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "x"))
	if raw == "" {
		return s.DefaultScale(), nil
	}
	scale, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidScale, raw)
	}
	if err := s.CheckScale(scale); err != nil {
		return 0, err
	}
	return scale, nil
}

// View 解析食譜並以指定倍率呈現
func (s *Service) View(ctx context.Context, recipeID string, scale float64) (*RecipeView, error) {
	views, err := s.Views(ctx, recipeID, []float64{scale})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Views 解析食譜一次，並以多個倍率分別呈現
func (s *Service) Views(ctx context.Context, recipeID string, scales []float64) ([]*RecipeView, error) {
	if strings.TrimSpace(recipeID) == "" {
		return nil, common.NewInvalidRequestError("recipe id is required")
	}
	if len(scales) == 0 {
		scales = []float64{s.DefaultScale()}
	}
	for _, sc := range scales {
		if err := s.CheckScale(sc); err != nil {
			return nil, err
		}
	}

	idx, cat, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, recipeID, idx, cat)
	if err != nil {
		common.LogWarn("食譜解析失敗", zap.String("recipe_id", recipeID), zap.Error(err))
		return nil, err
	}

	views := make([]*RecipeView, 0, len(scales))
	for _, sc := range scales {
		v, err := Render(RenderContext{Scale: sc, Recipe: resolved}, cat)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Browse 返回依分類分組的食譜索引
func (s *Service) Browse(ctx context.Context, category string) (*BrowseResult, error) {
	idx, err := s.loader.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}
	return Browse(idx, strings.TrimSpace(category)), nil
}

// Ingredients 返回完整食材目錄
func (s *Service) Ingredients(ctx context.Context) ([]catalog.Ingredient, error) {
	cat, err := s.loader.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.All(), nil
}
