package domain

import "github.com/shopspring/decimal"

type StaffPreference string

const (
	StaffAny      StaffPreference = "any"
	StaffSpecific StaffPreference = "specific"
)

// BookingSubmission is the payload posted when a service booking is placed.
// StaffRef is only meaningful when Preference is StaffSpecific.
type BookingSubmission struct {
	LocalRef   string          `json:"local_ref"`
	TenantRef  string          `json:"tenant_ref"`
	ServiceRef string          `json:"service_ref"`
	Customer   Customer        `json:"customer"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Preference StaffPreference `json:"staff_preference"`
	StaffRef   string          `json:"staff_ref,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

type BookingConfirmation struct {
	BookingID       string          `json:"booking_id"`
	StaffRef        string          `json:"staff_ref"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
}
