// Package templates 以 html/template 呈現食譜頁面；資料來自 recipe.RecipeView 等結構，與組合邏輯無關。
package templates

import (
	"embed"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed *.tmpl
var files embed.FS

// Parse 從內嵌檔案解析指定模板（含共用版面）
func Parse(name string) (*template.Template, error) {
	return template.New(name).Funcs(template.FuncMap{
		"capitalize": capitalize,
	}).ParseFS(files, "layout.html.tmpl", name)
}

// capitalize 將每個單字首字母大寫（子食譜標籤用）
func capitalize(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
