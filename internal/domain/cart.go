package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type ItemKind string

const (
	ItemKindProduct ItemKind = "product"
	ItemKindService ItemKind = "service"
)

// LineItem is one priced, quantified entry inside a cart. Key is stable
// within a single cart; items sharing a Key are merged, not duplicated.
type LineItem struct {
	Key          string          `json:"key"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Kind         ItemKind        `json:"kind"`
	StockCeiling *int            `json:"stock_ceiling,omitempty"` // products only, nil = uncapped
}

// ItemKey derives the cart identity for a catalog entry.
// Manually-entered items use a session-unique key instead.
func ItemKey(kind ItemKind, catalogRef string) string {
	return fmt.Sprintf("%s:%s", kind, catalogRef)
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CatalogRef returns the bare catalog reference the item's Key was built
// from. Manually-entered items carry no kind prefix and keep their key as is.
func (li LineItem) CatalogRef() string {
	return strings.TrimPrefix(li.Key, string(li.Kind)+":")
}
