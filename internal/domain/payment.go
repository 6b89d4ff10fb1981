package domain

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentCard   PaymentMethod = "card"
	PaymentCash   PaymentMethod = "cash"
	PaymentMobile PaymentMethod = "mobile"
	PaymentOther  PaymentMethod = "other"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// ResolveStatus maps a payment method to the payment status recorded on the
// order. It is evaluated exactly once, when the submission is composed, from
// the method current at that instant.
func ResolveStatus(method PaymentMethod) PaymentStatus {
	switch method {
	case PaymentCOD:
		return PaymentStatusPending
	case PaymentCard:
		return PaymentStatusPaid
	default:
		return PaymentStatusCompleted
	}
}
