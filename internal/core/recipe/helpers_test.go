package recipe

import (
	"context"
	"sync"

	"recipe-viewer/internal/core/catalog"
	"recipe-viewer/internal/pkg/common"
)

// memoryLoader 以記憶體資料實作 DataLoader，並記錄讀取過的食譜文件
type memoryLoader struct {
	mu      sync.Mutex
	index   []catalog.IndexEntry
	items   []catalog.Ingredient
	recipes map[string]*catalog.Recipe
	fetched []string
	failOn  string
}

func (m *memoryLoader) Load(ctx context.Context) (*catalog.Index, *catalog.Catalog, error) {
	idx, _ := m.LoadIndex(ctx)
	cat, _ := m.LoadCatalog(ctx)
	return idx, cat, nil
}

func (m *memoryLoader) LoadIndex(ctx context.Context) (*catalog.Index, error) {
	return catalog.NewIndex(m.index), nil
}

func (m *memoryLoader) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.NewCatalog(m.items), nil
}

func (m *memoryLoader) FetchRecipe(ctx context.Context, locator string) (*catalog.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched = append(m.fetched, locator)
	if locator == m.failOn {
		return nil, common.NewFetchError(locator, context.DeadlineExceeded)
	}
	r, ok := m.recipes[locator]
	if !ok {
		return nil, common.NewFetchError(locator, nil)
	}
	cp := *r
	return &cp, nil
}

func qty(v float64) *float64 { return &v }

// fixture 一份含子食譜的蘋果派資料：
// pie -> short_pastry -> egg_wash（第二層不應被讀取）
func fixture() *memoryLoader {
	return &memoryLoader{
		index: []catalog.IndexEntry{
			{ID: "pie", Name: "Apple Pie", Category: "Dessert", File: "recipes/pie.json"},
			{ID: "short_pastry", Name: "Short Pastry", Category: "Basics", File: "recipes/short_pastry.json"},
			{ID: "egg_wash", Name: "Egg Wash", Category: "Basics", File: "recipes/egg_wash.json"},
			{ID: "toast", Name: "Toast", File: "recipes/toast.json"},
		},
		items: []catalog.Ingredient{
			{ID: "apple", Name: "Apple", Units: "pcs"},
			{ID: "sugar", Name: "Sugar", Units: "g"},
			{ID: "flour", Name: "Flour", Units: "g"},
			{ID: "butter", Name: "Butter", Units: "g"},
			{ID: "egg", Name: "Egg", Units: "pcs"},
			{ID: "bread", Name: "Bread", Units: "slices"},
			{ID: "salt", Name: "Salt", Units: "g"},
		},
		recipes: map[string]*catalog.Recipe{
			"recipes/pie.json": {
				ID:   "pie",
				Name: "Apple Pie",
				Ingredients: []catalog.IngredientLine{
					{IngredientID: "apple", TotalQty: 6, Note: "peeled"},
					{IngredientID: "sugar", TotalQty: 150},
				},
				Steps: []catalog.Step{
					{Text: "Make the pastry", UsesSubRecipe: &catalog.SubRecipeRef{RecipeID: "short_pastry"}},
					{Text: "Slice apples and toss with half the sugar", Uses: []catalog.Usage{
						{IngredientID: "apple", Qty: 1},
						{IngredientID: "sugar", Qty: 0.5},
					}},
					{Text: "Glaze", UsesSubRecipe: &catalog.SubRecipeRef{RecipeID: "egg_wash"}},
					{Text: "Bake"},
				},
				SubRecipes:      []catalog.SubRecipeRef{{RecipeID: "short_pastry"}},
				OvenSetting:     "180C",
				PrepTime:        "30 min",
				CookTime:        "45 min",
				DefaultQuantity: qty(8),
				Notes:           []catalog.Note{{Text: "Serve warm"}},
			},
			"recipes/short_pastry.json": {
				ID:   "short_pastry",
				Name: "Short Pastry",
				Ingredients: []catalog.IngredientLine{
					{IngredientID: "flour", TotalQty: 200},
					{IngredientID: "butter", TotalQty: 100},
				},
				Steps: []catalog.Step{
					{Text: "Rub butter into flour", Uses: []catalog.Usage{
						{IngredientID: "flour", Qty: 1},
						{IngredientID: "butter", Qty: 1},
					}},
					{Text: "Brush", UsesSubRecipe: &catalog.SubRecipeRef{RecipeID: "egg_wash"}},
					{Text: "Chill"},
				},
				SubRecipes: []catalog.SubRecipeRef{{RecipeID: "egg_wash"}},
			},
			"recipes/egg_wash.json": {
				ID:          "egg_wash",
				Name:        "Egg Wash",
				Ingredients: []catalog.IngredientLine{{IngredientID: "egg", TotalQty: 1}},
				Steps:       []catalog.Step{{Text: "Beat egg", Uses: []catalog.Usage{{IngredientID: "egg", Qty: 1}}}},
			},
			"recipes/toast.json": {
				ID:          "toast",
				Name:        "Toast",
				Ingredients: []catalog.IngredientLine{{IngredientID: "bread", TotalQty: 2}},
				Steps:       []catalog.Step{{Text: "Toast", Uses: []catalog.Usage{{IngredientID: "bread", Qty: 1}}}},
			},
		},
	}
}
