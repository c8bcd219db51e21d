package recipe

import (
	"recipe-viewer/internal/core/catalog"
)

// IngredientRow 食材清單的一行
type IngredientRow struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Units        string  `json:"units"`
	Note         string  `json:"note,omitempty"`
	Total        float64 `json:"total"`
	Display      string  `json:"display"`
}

// IngredientGroup 一份食譜（主食譜或子食譜）的食材清單
type IngredientGroup struct {
	RecipeID string          `json:"recipe_id"`
	Label    string          `json:"label"`
	Lines    []IngredientRow `json:"lines"`
}

// IngredientGroups 為主食譜與每個子食譜各產生一組食材清單，保留原始順序
func IngredientGroups(rr *ResolvedRecipe, cat *catalog.Catalog, factor float64) ([]IngredientGroup, error) {
	groups := make([]IngredientGroup, 0, 1+len(rr.SubRecipes))
	for _, rec := range rr.All() {
		g := IngredientGroup{
			RecipeID: rec.ID,
			Label:    rec.Name,
			Lines:    make([]IngredientRow, 0, len(rec.Ingredients)),
		}
		for _, line := range rec.Ingredients {
			ing, err := cat.Lookup(line.IngredientID)
			if err != nil {
				return nil, err
			}
			total := Scale(line.TotalQty, factor)
			g.Lines = append(g.Lines, IngredientRow{
				IngredientID: line.IngredientID,
				Name:         ing.Name,
				Units:        ing.Units,
				Note:         line.Note,
				Total:        total,
				Display:      FormatQuantity(total),
			})
		}
		groups = append(groups, g)
	}
	return groups, nil
}
