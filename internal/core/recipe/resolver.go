package recipe

import (
	"context"
	"fmt"

	"recipe-viewer/internal/core/catalog"
	"recipe-viewer/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeFetcher 依定位字串讀取食譜文件
type RecipeFetcher interface {
	FetchRecipe(ctx context.Context, locator string) (*catalog.Recipe, error)
}

// ResolvedRecipe 主食譜與其直接子食譜（依宣告順序），建立後不可變
type ResolvedRecipe struct {
	Main       *catalog.Recipe
	SubRecipes []*catalog.Recipe
}

// Resolver 解析食譜及其一層子食譜
type Resolver struct {
	fetcher RecipeFetcher
}

// NewResolver 創建食譜解析器
func NewResolver(fetcher RecipeFetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve 讀取食譜與其直接子食譜。子食譜依宣告順序逐一讀取，不會再往下展開。
// 所有引用的食材都必須存在於食材目錄中。
func (r *Resolver) Resolve(ctx context.Context, recipeID string, idx *catalog.Index, cat *catalog.Catalog) (*ResolvedRecipe, error) {
	main, err := r.load(ctx, recipeID, idx)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedRecipe{Main: main}
	for _, ref := range main.SubRecipes {
		sub, err := r.load(ctx, ref.RecipeID, idx)
		if err != nil {
			return nil, fmt.Errorf("sub-recipe of %q: %w", recipeID, err)
		}
		resolved.SubRecipes = append(resolved.SubRecipes, sub)
	}

	for _, rec := range resolved.All() {
		if err := checkIngredients(rec, cat); err != nil {
			return nil, err
		}
	}

	common.LogDebug("食譜已解析",
		zap.String("recipe_id", recipeID),
		zap.Int("sub_recipes", len(resolved.SubRecipes)),
	)
	return resolved, nil
}

func (r *Resolver) load(ctx context.Context, recipeID string, idx *catalog.Index) (*catalog.Recipe, error) {
	entry, err := idx.Lookup(recipeID)
	if err != nil {
		return nil, err
	}
	rec, err := r.fetcher.FetchRecipe(ctx, entry.File)
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		rec.ID = entry.ID
	}
	if rec.Name == "" {
		rec.Name = entry.Name
	}
	return rec, nil
}

func checkIngredients(rec *catalog.Recipe, cat *catalog.Catalog) error {
	for _, id := range rec.IngredientIDs() {
		if _, err := cat.Lookup(id); err != nil {
			return fmt.Errorf("recipe %q: %w", rec.ID, err)
		}
	}
	return nil
}

// All 返回主食譜與子食譜，主食譜在前
func (rr *ResolvedRecipe) All() []*catalog.Recipe {
	out := make([]*catalog.Recipe, 0, 1+len(rr.SubRecipes))
	out = append(out, rr.Main)
	return append(out, rr.SubRecipes...)
}
