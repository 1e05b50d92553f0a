package wishlist

import (
	"context"

	"storefront-api/internal/domain"
)

// Repository persists one wishlist per user. GetOrCreate and AddProduct build
// the wishlist lazily; RemoveProduct reports ErrNotFound only when the user
// has no wishlist at all.
type Repository interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
	RemoveProduct(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
}
