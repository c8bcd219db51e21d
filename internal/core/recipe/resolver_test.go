package recipe

import (
	"context"
	"errors"
	"testing"

	"recipe-viewer/internal/core/catalog"
	"recipe-viewer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFixture(t *testing.T, data *memoryLoader, id string) (*ResolvedRecipe, error) {
	t.Helper()
	idx, cat, err := data.Load(context.Background())
	require.NoError(t, err)
	return NewResolver(data).Resolve(context.Background(), id, idx, cat)
}

func TestResolveLoadsOneLevel(t *testing.T) {
	data := fixture()

	rr, err := resolveFixture(t, data, "pie")
	require.NoError(t, err)

	assert.Equal(t, "pie", rr.Main.ID)
	require.Len(t, rr.SubRecipes, 1)
	assert.Equal(t, "short_pastry", rr.SubRecipes[0].ID)

	// short_pastry 宣告了 egg_wash，但不應被讀取
	assert.Equal(t, []string{"recipes/pie.json", "recipes/short_pastry.json"}, data.fetched)
}

func TestResolveKeepsDeclarationOrder(t *testing.T) {
	data := fixture()
	pie := data.recipes["recipes/pie.json"]
	pie.SubRecipes = []catalog.SubRecipeRef{{RecipeID: "egg_wash"}, {RecipeID: "short_pastry"}}

	rr, err := resolveFixture(t, data, "pie")
	require.NoError(t, err)
	require.Len(t, rr.SubRecipes, 2)
	assert.Equal(t, "egg_wash", rr.SubRecipes[0].ID)
	assert.Equal(t, "short_pastry", rr.SubRecipes[1].ID)
	assert.Equal(t, []string{"recipes/pie.json", "recipes/egg_wash.json", "recipes/short_pastry.json"}, data.fetched)
}

func TestResolveUnknownRecipe(t *testing.T) {
	data := fixture()

	rr, err := resolveFixture(t, data, "cake")
	require.Error(t, err)
	assert.Nil(t, rr)
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Empty(t, data.fetched)
}

func TestResolveUnknownSubRecipe(t *testing.T) {
	data := fixture()
	data.recipes["recipes/toast.json"].SubRecipes = []catalog.SubRecipeRef{{RecipeID: "jam"}}

	_, err := resolveFixture(t, data, "toast")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestResolveFetchFailure(t *testing.T) {
	data := fixture()
	data.failOn = "recipes/short_pastry.json"

	_, err := resolveFixture(t, data, "pie")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrFetchFailed))
}

func TestResolveUnknownIngredient(t *testing.T) {
	data := fixture()
	data.recipes["recipes/toast.json"].Steps = append(data.recipes["recipes/toast.json"].Steps,
		catalog.Step{Text: "Spread", Uses: []catalog.Usage{{IngredientID: "marmalade", Qty: 1}}})

	_, err := resolveFixture(t, data, "toast")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Contains(t, err.Error(), "marmalade")
}

func TestResolveFillsMissingIdentity(t *testing.T) {
	data := fixture()
	data.recipes["recipes/toast.json"].ID = ""
	data.recipes["recipes/toast.json"].Name = ""

	rr, err := resolveFixture(t, data, "toast")
	require.NoError(t, err)
	assert.Equal(t, "toast", rr.Main.ID)
	assert.Equal(t, "Toast", rr.Main.Name)
}
