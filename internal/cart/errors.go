package cart

import (
	"errors"
	"fmt"
)

var ErrItemNotFound = errors.New("cart: item not found")

// StockLimitError is returned when an add or quantity update would push a
// product past its stock ceiling. The cart is left unchanged; Ceiling is
// carried so the caller can present the limit.
type StockLimitError struct {
	Key     string
	Ceiling int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("cart: stock limit exceeded for %s (ceiling %d)", e.Key, e.Ceiling)
}
