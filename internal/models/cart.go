package models

import "strings"

// TicketIDPrefix marks cart item ids that represent show tickets rather than
// physical merch. Ticket items carry a date/time instead of a size.
const TicketIDPrefix = "tour-"

// TeeSizes is the ordered apparel size set offered on the merch page.
var TeeSizes = []string{"S", "M", "L", "XL", "XXL", "3XL", "4XL"}

// CartItem is one line in the visitor's cart. JSON layout matches the
// persisted cr_cart blob.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Date     string  `json:"date,omitempty"`
	Time     string  `json:"time,omitempty"`
}

// IsTicket reports whether the item is a show ticket (tour- id convention).
func (i CartItem) IsTicket() bool {
	return strings.HasPrefix(i.ID, TicketIDPrefix)
}

// LineTotal is price times quantity for this row.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// SameRow reports whether another add targets this row. Identity for merge
// purposes is the (id, size) pair.
func (i CartItem) SameRow(id, size string) bool {
	return i.ID == id && i.Size == size
}

// CartSubtotal sums line totals across all rows.
func CartSubtotal(items []CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	return subtotal
}

// CartCount sums quantities across all rows (cart badge number).
func CartCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// CopyItems returns a deep copy of the slice so an order snapshot can never be
// mutated through the live cart.
func CopyItems(items []CartItem) []CartItem {
	snapshot := make([]CartItem, len(items))
	copy(snapshot, items)
	return snapshot
}
