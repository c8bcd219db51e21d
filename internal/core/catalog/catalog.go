package catalog

import (
	"recipe-viewer/internal/pkg/common"
)

// Catalog 食材目錄，載入後唯讀
type Catalog struct {
	items map[string]Ingredient
	order []string
}

// NewCatalog 由食材清單建立目錄；重複 ID 以後者為準
func NewCatalog(items []Ingredient) *Catalog {
	c := &Catalog{items: make(map[string]Ingredient, len(items))}
	for _, it := range items {
		if _, exists := c.items[it.ID]; !exists {
			c.order = append(c.order, it.ID)
		}
		c.items[it.ID] = it
	}
	return c
}

// Lookup 依 ID 查詢食材，查無時返回 NotFoundError
func (c *Catalog) Lookup(id string) (Ingredient, error) {
	it, ok := c.items[id]
	if !ok {
		return Ingredient{}, common.NewNotFoundError("ingredient", id)
	}
	return it, nil
}

// Len 目錄項目數
func (c *Catalog) Len() int {
	return len(c.items)
}

// All 依載入順序返回所有食材
func (c *Catalog) All() []Ingredient {
	out := make([]Ingredient, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}
