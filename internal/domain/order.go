package domain

import "time"

// Order statuses. Pending is initial. Delivered blocks a later transition to
// Cancelled; other transitions are intentionally unguarded (the storefront
// relies on administrative discipline here, not a full transition table).
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
	PaymentStatusRefunded  = "Refunded"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Order is a placed checkout, retained forever as a historical record. Item
// prices are snapshotted at creation and never recomputed from the catalog.
type Order struct {
	ID                   string      `json:"id"`
	UserID               string      `json:"userId"`
	Items                []OrderItem `json:"items"`
	ShippingAddressID    string      `json:"shippingAddressId"`
	ShippingAddress      *Address    `json:"shippingAddress,omitempty"`
	TotalCents           int64       `json:"totalCents"`
	ShippingCostCents    int64       `json:"shippingCostCents"`
	Status               string      `json:"status"`
	PaymentStatus        string      `json:"paymentStatus"`
	TransactionID        string      `json:"transactionId"`
	OrderDate            time.Time   `json:"orderDate"`
	ExpectedDeliveryDate time.Time   `json:"expectedDeliveryDate"`
	ActualDeliveryDate   *time.Time  `json:"actualDeliveryDate,omitempty"`
	TrackingNumber       string      `json:"trackingNumber,omitempty"`
	Notes                string      `json:"notes,omitempty"`
}

// OrderItem is a line item with the price captured at order time.
type OrderItem struct {
	ProductID  string   `json:"productId"`
	Quantity   int      `json:"quantity"`
	PriceCents int64    `json:"priceCents"`
	Product    *Product `json:"product,omitempty"`
}
