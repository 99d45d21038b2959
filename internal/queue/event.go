// Package queue defines the message payloads exchanged over the broker
// and the background consumer that records confirmed submissions.
package queue

// OrderCreatedEvent is published when an order has been persisted. It
// carries enough for downstream consumers (notification mails, tallies)
// without re-reading the order file.
type OrderCreatedEvent struct {
	OrderID   string  `json:"order_id"`
	Email     string  `json:"email"`
	Items     string  `json:"items"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}
