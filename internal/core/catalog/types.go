// Package catalog 定義食譜資料模型，以及食材目錄與食譜索引的型別化查詢。
package catalog

// DefaultCategory 索引項目未指定分類時使用
const DefaultCategory = "Uncategorized"

// Ingredient 食材目錄項目
type Ingredient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Units string `json:"units"`
}

// IndexEntry 食譜索引項目
type IndexEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	File     string `json:"file"`
}

// CategoryOrDefault 返回分類，空值時為 DefaultCategory
func (e IndexEntry) CategoryOrDefault() string {
	if e.Category == "" {
		return DefaultCategory
	}
	return e.Category
}

// IngredientLine 食譜所需的一項食材，TotalQty 以預設份量（倍率 1）計
type IngredientLine struct {
	IngredientID string  `json:"ingredientId"`
	TotalQty     float64 `json:"totalQty"`
	Note         string  `json:"ingNote,omitempty"`
}

// Usage 步驟中使用的食材。Qty <= 1 視為總量的比例，> 1 視為絕對數量
type Usage struct {
	IngredientID string  `json:"ingredientId"`
	Qty          float64 `json:"qty"`
}

// SubRecipeRef 子食譜參照
type SubRecipeRef struct {
	RecipeID string `json:"recipeId"`
}

// Step 製作步驟
type Step struct {
	Text          string        `json:"text"`
	Uses          []Usage       `json:"uses,omitempty"`
	UsesSubRecipe *SubRecipeRef `json:"usesSubRecipe,omitempty"`
}

// Note 食譜備註
type Note struct {
	Text string `json:"text"`
}

// Recipe 完整食譜文件
type Recipe struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Ingredients     []IngredientLine `json:"ingredients"`
	Steps           []Step           `json:"steps"`
	SubRecipes      []SubRecipeRef   `json:"subRecipes,omitempty"`
	OvenSetting     string           `json:"oven_setting,omitempty"`
	PrepTime        string           `json:"prep_time,omitempty"`
	CookTime        string           `json:"cook_time,omitempty"`
	DefaultQuantity *float64         `json:"default_quantity,omitempty"`
	Notes           []Note           `json:"notes,omitempty"`
}

// IngredientIDs 返回食譜引用的所有食材 ID（含步驟），依首次出現順序且不重複
func (r *Recipe) IngredientIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, line := range r.Ingredients {
		add(line.IngredientID)
	}
	for _, step := range r.Steps {
		for _, u := range step.Uses {
			add(u.IngredientID)
		}
	}
	return ids
}
