package model

import "time"

// Order statuses. Orders are recorded as pending; the transition to paid
// belongs to a future payment webhook, not to this service.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Order is one finalized purchase as stored in orders.json and served to
// clients. It is created once at submission and never mutated afterwards.
// The json tags are the wire format the frontend already speaks.
type Order struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`  // buyer name
	Email     string          `json:"email"` // buyer email, used for my-orders filtering
	Items     string          `json:"items"` // human-readable summary, e.g. `Báljegy (2 db)`
	Attendees []AttendeeGroup `json:"attendees"`
	Note      string          `json:"note"`
	Total     float64         `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AttendeeGroup is the per-cart-line snapshot embedded in an order:
// seat-level names for regular tickets, or the reservation name and size
// for a table line. TableName and TableSize are omitted for regular lines.
type AttendeeGroup struct {
	TicketID  string   `json:"ticketId"`
	Title     string   `json:"title"`
	Names     []string `json:"names"`
	TableName string   `json:"tableName,omitempty"`
	TableSize int      `json:"tableSize,omitempty"`
}
