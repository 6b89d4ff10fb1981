package domain

import "github.com/shopspring/decimal"

type DiscountMode string

const (
	DiscountFixed      DiscountMode = "fixed"
	DiscountPercentage DiscountMode = "percentage"
)

// DiscountSpec is the chosen discount mode and its magnitude. The monetary
// discount derived from it is clamped to the subtotal it applies to, never
// rejected. The zero value means no discount.
type DiscountSpec struct {
	Mode      DiscountMode    `json:"mode"`
	Magnitude decimal.Decimal `json:"magnitude"`
}

// PriceBreakdown holds the derived totals for a cart. It is recomputed from
// the current cart and discount on every use, never stored and mutated.
type PriceBreakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}
