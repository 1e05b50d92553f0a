package domain

import "time"

// Cart holds a user's pending line items. There is exactly one cart per user
// (created lazily). TotalCents is derived from current catalog prices on every
// persist; items whose product no longer resolves contribute zero.
type Cart struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"totalCents"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartItem is a single line item in a cart. Product is populated on reads when
// the referenced product still exists.
type CartItem struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}
