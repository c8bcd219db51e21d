package recipe

// RenderContext 一次呈現所需的全部輸入，呈現結果只取決於此
type RenderContext struct {
	Scale  float64
	Recipe *ResolvedRecipe
}

// Info 食譜資訊區塊
type Info struct {
	OvenSetting   string   `json:"oven_setting,omitempty"`
	PrepTime      string   `json:"prep_time,omitempty"`
	CookTime      string   `json:"cook_time,omitempty"`
	Serves        *float64 `json:"serves,omitempty"`
	ServesDisplay string   `json:"serves_display,omitempty"`
}

// RecipeView 呈現層使用的完整食譜資料
type RecipeView struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Scale  float64           `json:"scale"`
	Info   *Info             `json:"info,omitempty"`
	Groups []IngredientGroup `json:"ingredient_groups"`
	Method []RenderedStep    `json:"method"`
	Notes  []string          `json:"notes"`
}

// MethodNode 主步驟與其內嵌的子食譜步驟（模板使用）
type MethodNode struct {
	Step     RenderedStep
	Children []RenderedStep
}

// CategoryGroup 同一分類下的食譜
type CategoryGroup struct {
	Category string           `json:"category"`
	Recipes  []CategoryRecipe `json:"recipes"`
}

// CategoryRecipe 分類瀏覽的一筆食譜
type CategoryRecipe struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrowseResult 分類瀏覽結果
type BrowseResult struct {
	Selected   string          `json:"selected,omitempty"`
	Categories []string        `json:"categories"`
	Groups     []CategoryGroup `json:"groups"`
}
