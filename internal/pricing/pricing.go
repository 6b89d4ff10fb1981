package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// TaxPolicy computes the tax component of a breakdown. The engine ships with
// ZeroTax only; the interface exists so a real jurisdiction rule can replace
// it without touching any caller.
type TaxPolicy interface {
	Tax(subtotal, discount decimal.Decimal) decimal.Decimal
}

// ZeroTax is the current tax rule: a named placeholder, fixed at zero.
type ZeroTax struct{}

func (ZeroTax) Tax(_, _ decimal.Decimal) decimal.Decimal { return decimal.Zero }

// Compute derives the full price breakdown from the current line items and
// discount. It is pure and is the single code path behind displayed totals,
// receipt totals and submitted totals. A nil policy falls back to ZeroTax.
func Compute(items []domain.LineItem, spec domain.DiscountSpec, policy TaxPolicy) domain.PriceBreakdown {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	discount := discountFor(spec, subtotal)

	if policy == nil {
		policy = ZeroTax{}
	}
	tax := policy.Tax(subtotal, discount)

	total := subtotal.Add(tax).Sub(discount)
	if total.IsNegative() {
		// Unreachable given the clamps above, kept as a hard floor.
		total = decimal.Zero
	}

	return domain.PriceBreakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}
}

// discountFor clamps rather than rejects: negative magnitudes count as zero,
// percentages above 100 and fixed amounts above the subtotal yield the
// subtotal itself.
func discountFor(spec domain.DiscountSpec, subtotal decimal.Decimal) decimal.Decimal {
	magnitude := spec.Magnitude
	if magnitude.IsNegative() {
		magnitude = decimal.Zero
	}

	var discount decimal.Decimal
	switch spec.Mode {
	case domain.DiscountPercentage:
		discount = subtotal.Mul(magnitude).Div(hundred)
	case domain.DiscountFixed:
		discount = magnitude
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount
}
