package order

import (
	"context"
	"time"

	"storefront-api/internal/domain"
)

type CreateOrderInput struct {
	UserID               string
	Items                []domain.OrderItem
	ShippingAddressID    string
	TotalCents           int64
	ShippingCostCents    int64
	TransactionID        string
	OrderDate            time.Time
	ExpectedDeliveryDate time.Time
	Notes                string
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// SetStatus persists a status change; actualDelivery, when non-nil, is
	// stamped as the actual delivery date.
	SetStatus(ctx context.Context, id, status string, actualDelivery *time.Time) (*domain.Order, error)
}
