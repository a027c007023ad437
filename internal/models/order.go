package models

import (
	"time"
)

// OrderStatus values an operator can set. No monotonic ordering is enforced:
// the admin may move an order in any direction.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

// OrderStatuses lists every settable status, in fulfilment order.
var OrderStatuses = []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

// Customer is the shipping/billing address block captured at checkout.
type Customer struct {
	FullName string `json:"fullname"`
	Email    string `json:"email,omitempty"`
	Country  string `json:"country"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Zip      string `json:"zip"`
}

// Shipping is the selected shipping option and its cost.
type Shipping struct {
	Method string  `json:"method"`
	Cost   float64 `json:"cost"`
}

// Order is an immutable-at-creation record of a completed checkout. Items is
// a point-in-time snapshot of the cart; totals are derived once and stored.
// Admin updates may touch only Status, Carrier, TrackingNumber and Notes.
type Order struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	Customer       Customer       `json:"customer"`
	Items          []CartItem     `json:"items"`
	Subtotal       float64        `json:"subtotal"`
	Shipping       Shipping       `json:"shipping"`
	Tax            float64        `json:"tax"`
	Total          float64        `json:"total"`
	Status         OrderStatus    `json:"status"`
	PaymentMethod  string         `json:"paymentMethod"`
	PaymentStatus  string         `json:"paymentStatus"`
	Payment        PaymentDetails `json:"payment"`
	TrackingNumber string         `json:"trackingNumber"`
	Carrier        string         `json:"carrier"`
	Notes          string         `json:"notes"`
	CustomerNotes  string         `json:"customerNotes"`
}

// ItemCount sums quantities across the order's line items.
func (o Order) ItemCount() int {
	return CartCount(o.Items)
}

// BackupVersion is written into every backup envelope. It is recorded but not
// yet checked on restore.
const BackupVersion = "1.0"

// OrderBackup is the downloadable backup envelope.
type OrderBackup struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Orders     []Order   `json:"orders"`
}
