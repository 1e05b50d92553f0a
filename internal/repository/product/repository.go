package product

import (
	"context"

	"storefront-api/internal/domain"
)

// ListInput narrows and pages a catalog listing. Sort accepts the storefront's
// query values: "price", "-price", "-createdAt" (default), "-totalSales".
type ListInput struct {
	Category string
	Sort     string
	Page     int
	Limit    int
}

type Repository interface {
	List(ctx context.Context, in ListInput) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	HotAndNew(ctx context.Context, limit int) ([]domain.Product, error)
	Evergreen(ctx context.Context, limit int) ([]domain.Product, error)
	AddRating(ctx context.Context, productID, userID string, rating int, review string) error
	IncrementSales(ctx context.Context, productID string, quantity int) error
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
