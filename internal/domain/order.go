package domain

import "github.com/shopspring/decimal"

type Origin string

const (
	OriginPOS     Origin = "pos"
	OriginWebsite Origin = "website"
)

// Customer carries the identity fields collected by the wizard. Which fields
// are mandatory depends on the flow; unused fields stay empty.
type Customer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

type OrderItem struct {
	ProductRef string          `json:"product_ref,omitempty"`
	ServiceRef string          `json:"service_ref,omitempty"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// OrderSubmission is the payload posted to the backend when an order is
// placed. It is composed once, at submission time, and never mutated after
// construction. LocalRef is the client-assigned reference; the server-assigned
// receipt number only exists on the response.
type OrderSubmission struct {
	LocalRef      string          `json:"local_ref"`
	Customer      Customer        `json:"customer"`
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Origin        Origin          `json:"origin"`
	Notes         string          `json:"notes,omitempty"`
}

type OrderReceipt struct {
	ReceiptNumber string          `json:"receipt_number"`
	Order         OrderSubmission `json:"order"`
}
