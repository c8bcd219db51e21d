package recipe

import (
	"strings"

	"recipe-viewer/internal/core/catalog"
	"recipe-viewer/internal/pkg/common"

	"go.uber.org/zap"
)

// MaxDepth 子食譜只內嵌一層
const MaxDepth = 1

// UseAmount 步驟中一項食材的顯示用量
type UseAmount struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Units        string  `json:"units"`
	Amount       float64 `json:"amount"`
	Display      string  `json:"display"`
	MissingTotal bool    `json:"missing_total,omitempty"`
}

// RenderedStep 組合後的步驟，Depth 0 為主食譜步驟，1 為內嵌的子食譜步驟
type RenderedStep struct {
	Text           string      `json:"text"`
	Depth          int         `json:"depth"`
	Uses           []UseAmount `json:"uses,omitempty"`
	SubRecipeID    string      `json:"sub_recipe_id,omitempty"`
	SubRecipeLabel string      `json:"sub_recipe_label,omitempty"`
	Inlined        bool        `json:"inlined,omitempty"`
	NoUsage        bool        `json:"no_usage,omitempty"`
}

// SubRecipeLabel 將子食譜 ID 轉為顯示標籤（底線換成空白）
func SubRecipeLabel(recipeID string) string {
	return strings.ReplaceAll(recipeID, "_", " ")
}

// Compose 依序組合步驟；引用子食譜的步驟之後緊接著插入該子食譜的全部步驟（depth+1，使用子食譜自己的總量）。
// 找不到的子食譜只顯示標籤，不視為錯誤。
func Compose(steps []catalog.Step, totals Totals, subRecipes []*catalog.Recipe, cat *catalog.Catalog, factor float64, depth int) ([]RenderedStep, error) {
	out := make([]RenderedStep, 0, len(steps))

	for _, step := range steps {
		rs := RenderedStep{
			Text:  step.Text,
			Depth: depth,
		}

		for _, use := range step.Uses {
			ing, err := cat.Lookup(use.IngredientID)
			if err != nil {
				return nil, err
			}
			base, itemized := BaseAmount(use, totals)
			missing := !itemized && use.Qty <= FractionThreshold
			if missing {
				common.LogDebug("步驟用量缺少食材總量，使用基準值 1",
					zap.String("ingredient_id", use.IngredientID),
					zap.Float64("qty", use.Qty),
				)
			}
			amount := Scale(base, factor)
			rs.Uses = append(rs.Uses, UseAmount{
				IngredientID: use.IngredientID,
				Name:         ing.Name,
				Units:        ing.Units,
				Amount:       amount,
				Display:      FormatQuantity(amount),
				MissingTotal: missing,
			})
		}

		var sub *catalog.Recipe
		if step.UsesSubRecipe != nil {
			rs.SubRecipeID = step.UsesSubRecipe.RecipeID
			if len(step.Uses) == 0 {
				rs.SubRecipeLabel = SubRecipeLabel(step.UsesSubRecipe.RecipeID)
			}
			if depth < MaxDepth {
				sub = findRecipe(subRecipes, step.UsesSubRecipe.RecipeID)
			}
			if sub == nil {
				common.LogWarn("子食譜未載入，僅顯示標籤",
					zap.String("recipe_id", step.UsesSubRecipe.RecipeID),
					zap.Int("depth", depth),
				)
			}
		} else if len(step.Uses) == 0 {
			rs.NoUsage = true
		}

		rs.Inlined = sub != nil
		out = append(out, rs)

		if sub != nil {
			nested, err := Compose(sub.Steps, TotalsOf(sub), nil, cat, factor, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}

	return out, nil
}

func findRecipe(recipes []*catalog.Recipe, id string) *catalog.Recipe {
	for _, r := range recipes {
		if r.ID == id {
			return r
		}
	}
	return nil
}
