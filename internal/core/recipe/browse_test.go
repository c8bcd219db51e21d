package recipe

import (
	"testing"

	"recipe-viewer/internal/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowse(t *testing.T) {
	idx := catalog.NewIndex(fixture().index)

	tests := []struct {
		name       string
		category   string
		wantGroups []string
	}{
		{"all", "", []string{"Dessert", "Basics", catalog.DefaultCategory}},
		{"filter", "Basics", []string{"Basics"}},
		{"case insensitive", "basics", []string{"Basics"}},
		{"uncategorized", "uncategorized", []string{catalog.DefaultCategory}},
		{"unknown", "Soups", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Browse(idx, tt.category)
			assert.Equal(t, []string{"Dessert", "Basics", catalog.DefaultCategory}, res.Categories)

			var got []string
			for _, g := range res.Groups {
				got = append(got, g.Category)
			}
			assert.Equal(t, tt.wantGroups, got)
		})
	}
}

func TestBrowseKeepsIndexOrderWithinCategory(t *testing.T) {
	res := Browse(catalog.NewIndex(fixture().index), "Basics")
	require.Len(t, res.Groups, 1)
	assert.Equal(t, []CategoryRecipe{
		{ID: "short_pastry", Name: "Short Pastry"},
		{ID: "egg_wash", Name: "Egg Wash"},
	}, res.Groups[0].Recipes)
}
