package recipe

import (
	"fmt"

	"recipe-viewer/internal/core/catalog"
)

// Render 依呈現內容產生完整的食譜資料
func Render(rc RenderContext, cat *catalog.Catalog) (*RecipeView, error) {
	if rc.Recipe == nil || rc.Recipe.Main == nil {
		return nil, fmt.Errorf("render: no recipe")
	}
	main := rc.Recipe.Main

	groups, err := IngredientGroups(rc.Recipe, cat, rc.Scale)
	if err != nil {
		return nil, err
	}

	method, err := Compose(main.Steps, TotalsOf(main), rc.Recipe.SubRecipes, cat, rc.Scale, 0)
	if err != nil {
		return nil, err
	}

	notes := make([]string, 0, len(main.Notes))
	for _, n := range main.Notes {
		notes = append(notes, n.Text)
	}

	return &RecipeView{
		ID:     main.ID,
		Name:   main.Name,
		Scale:  rc.Scale,
		Info:   infoOf(main, rc.Scale),
		Groups: groups,
		Method: method,
		Notes:  notes,
	}, nil
}

func infoOf(r *catalog.Recipe, factor float64) *Info {
	if r.OvenSetting == "" && r.PrepTime == "" && r.CookTime == "" && r.DefaultQuantity == nil {
		return nil
	}
	info := &Info{
		OvenSetting: r.OvenSetting,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
	}
	if r.DefaultQuantity != nil {
		serves := Scale(*r.DefaultQuantity, factor)
		info.Serves = &serves
		info.ServesDisplay = FormatQuantity(serves)
	}
	return info
}

// Nest 將扁平的步驟序列依深度分組，子食譜步驟掛在引用它的步驟之下
func Nest(steps []RenderedStep) []MethodNode {
	var nodes []MethodNode
	for _, s := range steps {
		if s.Depth > 0 && len(nodes) > 0 {
			last := &nodes[len(nodes)-1]
			last.Children = append(last.Children, s)
			continue
		}
		nodes = append(nodes, MethodNode{Step: s})
	}
	return nodes
}

// MethodTree 返回分組後的步驟（模板使用）
func (v *RecipeView) MethodTree() []MethodNode {
	return Nest(v.Method)
}
