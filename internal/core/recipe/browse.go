package recipe

import (
	"strings"

	"recipe-viewer/internal/core/catalog"
)

// Browse 依分類分組索引項目；分類依首次出現排序，項目保留索引順序。
// category 非空時只保留該分類（不分大小寫）。
func Browse(idx *catalog.Index, category string) *BrowseResult {
	result := &BrowseResult{
		Selected:   category,
		Categories: []string{},
		Groups:     []CategoryGroup{},
	}
	pos := make(map[string]int)

	for _, e := range idx.Entries() {
		cat := e.CategoryOrDefault()
		i, ok := pos[cat]
		if !ok {
			i = len(result.Groups)
			pos[cat] = i
			result.Categories = append(result.Categories, cat)
			result.Groups = append(result.Groups, CategoryGroup{Category: cat})
		}
		result.Groups[i].Recipes = append(result.Groups[i].Recipes, CategoryRecipe{ID: e.ID, Name: e.Name})
	}

	if category == "" {
		return result
	}

	filtered := []CategoryGroup{}
	for _, g := range result.Groups {
		if strings.EqualFold(g.Category, category) {
			filtered = append(filtered, g)
		}
	}
	result.Groups = filtered
	return result
}
