package domain

import "time"

type EventType string

const (
	EventSearch            EventType = "search"
	EventCartChanged       EventType = "cart_changed"
	EventCheckoutConfirmed EventType = "checkout_confirmed"
)

// Event describes storefront activity worth reporting outside the process.
type Event struct {
	Type          EventType
	ProductID     string
	Quantity      int
	Search        string
	Category      string
	TotalQuantity int
	Subtotal      float64
	OccurredAt    time.Time
}
