package templates

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"recipe-viewer/internal/core/recipe"
)

const (
	indexTemplate  = "index.html.tmpl"
	recipeTemplate = "recipe.html.tmpl"
	errorTemplate  = "error.html.tmpl"
)

// ScaleOption 頁面上的倍率切換連結
type ScaleOption struct {
	Label  string
	Value  string
	URL    string
	Active bool
}

// CategoryOption 分類篩選選項
type CategoryOption struct {
	Name     string
	Selected bool
}

// RecipePageData 食譜頁面資料
type RecipePageData struct {
	AppTitle string
	View     *recipe.RecipeView
	Method   []recipe.MethodNode
	Scales   []ScaleOption
}

// IndexPageData 瀏覽頁面資料
type IndexPageData struct {
	AppTitle   string
	Browse     *recipe.BrowseResult
	Categories []CategoryOption
}

// ErrorPageData 錯誤頁面資料
type ErrorPageData struct {
	AppTitle string
	Status   int
	Code     string
	Title    string
	Message  string
}

// NewRecipePage 組裝食譜頁面資料，presets 為可切換的倍率
func NewRecipePage(title string, view *recipe.RecipeView, presets []float64) RecipePageData {
	scales := make([]ScaleOption, 0, len(presets))
	for _, p := range presets {
		value := recipe.FormatQuantity(p)
		q := url.Values{}
		q.Set("id", view.ID)
		q.Set("scale", value)
		scales = append(scales, ScaleOption{
			Label:  value + "x",
			Value:  value,
			URL:    "/recipe?" + q.Encode(),
			Active: p == view.Scale,
		})
	}
	return RecipePageData{
		AppTitle: title,
		View:     view,
		Method:   view.MethodTree(),
		Scales:   scales,
	}
}

// NewIndexPage 組裝瀏覽頁面資料
func NewIndexPage(title string, result *recipe.BrowseResult) IndexPageData {
	opts := make([]CategoryOption, 0, len(result.Categories))
	for _, c := range result.Categories {
		opts = append(opts, CategoryOption{
			Name:     c,
			Selected: result.Selected != "" && strings.EqualFold(c, result.Selected),
		})
	}
	return IndexPageData{AppTitle: title, Browse: result, Categories: opts}
}

// NewErrorPage 組裝錯誤頁面資料
func NewErrorPage(title string, status int, code, message string) ErrorPageData {
	return ErrorPageData{
		AppTitle: title,
		Status:   status,
		Code:     code,
		Title:    http.StatusText(status),
		Message:  message,
	}
}

// RenderRecipePage 渲染食譜頁面
func RenderRecipePage(data RecipePageData) ([]byte, error) {
	return render(recipeTemplate, data)
}

// RenderIndexPage 渲染瀏覽頁面
func RenderIndexPage(data IndexPageData) ([]byte, error) {
	return render(indexTemplate, data)
}

// RenderErrorPage 渲染錯誤頁面
func RenderErrorPage(data ErrorPageData) ([]byte, error) {
	return render(errorTemplate, data)
}

func render(name string, data any) ([]byte, error) {
	tmpl, err := Parse(name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
