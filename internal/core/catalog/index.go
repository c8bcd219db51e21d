package catalog

import (
	"recipe-viewer/internal/pkg/common"
)

// Index 食譜索引，保留文件中的宣告順序
type Index struct {
	entries map[string]IndexEntry
	order   []string
}

// NewIndex 由索引項目建立索引；重複 ID 以後者為準
func NewIndex(entries []IndexEntry) *Index {
	idx := &Index{entries: make(map[string]IndexEntry, len(entries))}
	for _, e := range entries {
		if _, exists := idx.entries[e.ID]; !exists {
			idx.order = append(idx.order, e.ID)
		}
		idx.entries[e.ID] = e
	}
	return idx
}

// Lookup 依食譜 ID 查詢索引項目，查無時返回 NotFoundError
func (idx *Index) Lookup(id string) (IndexEntry, error) {
	e, ok := idx.entries[id]
	if !ok {
		return IndexEntry{}, common.NewNotFoundError("recipe", id)
	}
	return e, nil
}

// Len 索引項目數
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries 依宣告順序返回所有項目
func (idx *Index) Entries() []IndexEntry {
	out := make([]IndexEntry, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.entries[id])
	}
	return out
}
