package model

// Ticket is one entry of the static catalog. The catalog is fixed at
// deploy time and never persisted; orders carry a text snapshot instead.
type Ticket struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Price int    `json:"price"` // unit price in HUF
}

// TableTicketID marks the table-reservation product. Its cart lines are
// described by a table size and a reservation name instead of per-seat
// attendee names.
const TableTicketID = "asztal"

// DefaultTableSize is the table size a fresh table-reservation line gets.
const DefaultTableSize = 6

// Catalog returns the three ticket types sold for the event.
func Catalog() []Ticket {
	return []Ticket{
		{ID: "bal", Title: "Báljegy", Desc: "Belépő a VorSilvester bálra – zene, tánc, élmény!", Price: 6000},
		{ID: "vacsora", Title: "Vacsorajegy", Desc: "Ültetett vacsora az eseményen.", Price: 5000},
		{ID: TableTicketID, Title: "Asztalfoglalás", Desc: "Asztalfoglalás a társaságnak (alapértelmezés 6 fő).", Price: 12000},
	}
}

// IsTable reports whether the ticket is the table-reservation product.
func (t Ticket) IsTable() bool { return t.ID == TableTicketID }
