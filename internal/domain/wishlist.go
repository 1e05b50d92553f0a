package domain

import "time"

// Wishlist holds the products a user has bookmarked. Like the cart it is
// created lazily on first access.
type Wishlist struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Products  []Product `json:"products"`
	UpdatedAt time.Time `json:"updatedAt"`
}
