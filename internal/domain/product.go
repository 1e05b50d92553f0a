package domain

import "time"

// Product is a catalog entry. The catalog is mostly read-only from this
// service's point of view; TotalSales is the one counter the placement
// workflow bumps.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	PriceCents    int64     `json:"priceCents"`
	Stock         int       `json:"stock"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	TotalSales    int       `json:"totalSales"`
	AverageRating float64   `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Rating is one user's review of a product. A user may rate a product once.
type Rating struct {
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
