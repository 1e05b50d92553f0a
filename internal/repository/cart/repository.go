package cart

import (
	"context"

	"storefront-api/internal/domain"
)

// Repository persists one cart per user, created lazily by the mutating
// operations and by GetOrCreate. Every mutation recomputes the cart total from
// current catalog prices in the same transaction; items whose product no
// longer exists contribute zero.
type Repository interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}
