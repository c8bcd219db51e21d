package recipe

import (
	"recipe-viewer/internal/core/catalog"

	"github.com/shopspring/decimal"
)

// FractionThreshold 步驟用量不大於此值時視為總量的比例，大於時視為絕對數量
const FractionThreshold = 1.0

// fallbackTotal 食材未列在食譜總量中時使用的基準值
const fallbackTotal = 1.0

// Totals 食材 ID 對應的預設份量總量
type Totals map[string]float64

// TotalsOf 由食譜自身的食材清單建立總量表
func TotalsOf(r *catalog.Recipe) Totals {
	totals := make(Totals, len(r.Ingredients))
	for _, line := range r.Ingredients {
		totals[line.IngredientID] = line.TotalQty
	}
	return totals
}

// Scale 返回 value*factor 以四捨五入到小數第二位的結果
func Scale(value, factor float64) float64 {
	f, _ := decimal.NewFromFloat(value).
		Mul(decimal.NewFromFloat(factor)).
		Round(2).
		Float64()
	return f
}

// BaseAmount 計算步驟用量在倍率 1 下的數量；第二個返回值表示食材是否列在總量表中
func BaseAmount(use catalog.Usage, totals Totals) (float64, bool) {
	total, ok := totals[use.IngredientID]
	if use.Qty > FractionThreshold {
		return use.Qty, ok
	}
	if !ok {
		total = fallbackTotal
	}
	return use.Qty * total, ok
}

// ResolveUse 計算步驟用量在指定倍率下的顯示數量
func ResolveUse(use catalog.Usage, totals Totals, factor float64) float64 {
	base, _ := BaseAmount(use, totals)
	return Scale(base, factor)
}

// FormatQuantity 格式化數量，去除多餘的小數零（200、0.5、1.25）
func FormatQuantity(v float64) string {
	return decimal.NewFromFloat(v).String()
}
