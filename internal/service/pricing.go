package service

import (
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

// TaxRate 固定税率 8%
var TaxRate = decimal.NewFromFloat(0.08)

// Totals 订单金额汇总。运费恒为免费，不参与计算。
type Totals struct {
	Subtotal models.Money `json:"subtotal"`
	Tax      models.Money `json:"tax"`
	Total    models.Money `json:"total"`
}

// ComputeTotals 根据行项目计算小计、税费与总额。
// 内部保留完整精度，序列化时由 Money 统一保留 2 位小数。
func ComputeTotals(items []CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal: models.NewMoneyFromDecimal(subtotal),
		Tax:      models.NewMoneyFromDecimal(tax),
		Total:    models.NewMoneyFromDecimal(subtotal.Add(tax)),
	}
}
