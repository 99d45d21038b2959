// Package cart implements the in-memory cart aggregate: ticket selections
// with per-seat attendee names (or table metadata), completeness checks
// before checkout, and the translation into a submittable order payload.
//
// The cart is an owned value passed around explicitly, not ambient state;
// all mutators work on the receiver so the aggregate stays unit-testable
// without any HTTP or UI wiring.
package cart

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wemender/vorsilvester/internal/model"
)

// MaxQty caps the quantity of a single line.
const MaxQty = 10

// Table field names accepted by SetTableField.
const (
	FieldTableSize = "tableSize"
	FieldTableName = "tableName"
)

// Line is one ticket-type selection. Attendees always has exactly Qty
// entries: it is truncated or padded with empty strings whenever the
// quantity changes, so the per-seat inputs keep their positions.
// TableSize and TableName are meaningful only on table-reservation lines.
type Line struct {
	Ticket    model.Ticket
	Qty       int
	Attendees []string
	TableSize int
	TableName string
}

// Cart holds the lines in insertion order.
type Cart struct {
	Lines []Line
}

// AddTicket puts one more of the given ticket into the cart. An existing
// line has its quantity incremented (capped at MaxQty) with the attendee
// slots grown to match; otherwise a new line is inserted with quantity 1
// and a single empty attendee slot. A fresh table-reservation line gets
// the default table size and an empty reservation name.
func (c *Cart) AddTicket(t model.Ticket) {
	if ln := c.line(t.ID); ln != nil {
		c.setQty(ln, ln.Qty+1)
		return
	}
	ln := Line{Ticket: t, Qty: 1, Attendees: []string{""}}
	if t.IsTable() {
		ln.TableSize = model.DefaultTableSize
	}
	c.Lines = append(c.Lines, ln)
}

// ChangeQuantity adjusts a line's quantity by delta, clamped to
// [1, MaxQty], resizing the attendee slots to match. Unknown ticket ids
// are ignored.
func (c *Cart) ChangeQuantity(ticketID string, delta int) {
	if ln := c.line(ticketID); ln != nil {
		c.setQty(ln, ln.Qty+delta)
	}
}

// RemoveLine drops the line for the given ticket entirely.
func (c *Cart) RemoveLine(ticketID string) {
	for i := range c.Lines {
		if c.Lines[i].Ticket.ID == ticketID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetAttendeeName fills one attendee slot. The slot slice is grown with
// empty strings up to the line's quantity first; indexes outside
// [0, qty) are ignored.
func (c *Cart) SetAttendeeName(ticketID string, index int, value string) {
	ln := c.line(ticketID)
	if ln == nil {
		return
	}
	for len(ln.Attendees) < ln.Qty {
		ln.Attendees = append(ln.Attendees, "")
	}
	if index >= 0 && index < ln.Qty {
		ln.Attendees[index] = value
	}
}

// SetTableField updates a table-reservation line's metadata. The size is
// coerced to an integer of at least 1 (unparseable input becomes 1); the
// reservation name is stored verbatim. Non-table lines and unknown field
// names are ignored.
func (c *Cart) SetTableField(ticketID, field, value string) {
	ln := c.line(ticketID)
	if ln == nil || !ln.Ticket.IsTable() {
		return
	}
	switch field {
	case FieldTableSize:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			n = 1
		}
		ln.TableSize = n
	case FieldTableName:
		ln.TableName = value
	}
}

// Total sums unit price times quantity over all lines.
func (c *Cart) Total() int {
	sum := 0
	for _, ln := range c.Lines {
		sum += ln.Ticket.Price * ln.Qty
	}
	return sum
}

// ValidateForCheckout checks completeness without mutating the cart: every
// regular line needs a non-blank name in each of its qty slots, every
// table line needs a non-blank reservation name and a size of at least 1.
// It fails fast on the first incomplete line, identified by ticket title.
func (c *Cart) ValidateForCheckout() error {
	for _, ln := range c.Lines {
		if ln.Ticket.IsTable() {
			if strings.TrimSpace(ln.TableName) == "" || ln.TableSize < 1 {
				return fmt.Errorf("line %q: table reservation needs a size and a name", ln.Ticket.Title)
			}
			continue
		}
		if len(ln.Attendees) != ln.Qty {
			return fmt.Errorf("line %q: attendee name missing", ln.Ticket.Title)
		}
		for _, name := range ln.Attendees {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("line %q: attendee name missing", ln.Ticket.Title)
			}
		}
	}
	return nil
}

// ToOrderPayload serializes the cart into the order submission body:
// a human-readable items summary, the per-line attendee snapshots, the
// computed total and the current time. Identity and status are assigned
// by the server at submission.
func (c *Cart) ToOrderPayload(name, email, note string) model.Order {
	parts := make([]string, 0, len(c.Lines))
	groups := make([]model.AttendeeGroup, 0, len(c.Lines))
	for _, ln := range c.Lines {
		g := model.AttendeeGroup{
			TicketID: ln.Ticket.ID,
			Title:    ln.Ticket.Title,
			Names:    append([]string(nil), ln.Attendees[:min(len(ln.Attendees), ln.Qty)]...),
		}
		if ln.Ticket.IsTable() {
			g.TableName = ln.TableName
			g.TableSize = ln.TableSize
			parts = append(parts, fmt.Sprintf("%s (%d db, %d fő, név: %s)",
				ln.Ticket.Title, ln.Qty, ln.TableSize, ln.TableName))
		} else {
			parts = append(parts, fmt.Sprintf("%s (%d db)", ln.Ticket.Title, ln.Qty))
		}
		groups = append(groups, g)
	}
	return model.Order{
		Name:      name,
		Email:     email,
		Items:     strings.Join(parts, ", "),
		Attendees: groups,
		Note:      note,
		Total:     float64(c.Total()),
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Cart) line(ticketID string) *Line {
	for i := range c.Lines {
		if c.Lines[i].Ticket.ID == ticketID {
			return &c.Lines[i]
		}
	}
	return nil
}

// setQty clamps the quantity and resizes the attendee slots, preserving
// the retained prefix of previously entered names.
func (c *Cart) setQty(ln *Line, qty int) {
	if qty < 1 {
		qty = 1
	}
	if qty > MaxQty {
		qty = MaxQty
	}
	ln.Qty = qty
	if len(ln.Attendees) > qty {
		ln.Attendees = ln.Attendees[:qty]
	}
	for len(ln.Attendees) < qty {
		ln.Attendees = append(ln.Attendees, "")
	}
}
