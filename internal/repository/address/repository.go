package address

import (
	"context"

	"storefront-api/internal/domain"
)

type CreateAddressInput struct {
	UserID      string
	Type        string
	Name        string
	PhoneNumber string
	Line1       string
	Line2       string
	City        string
	State       string
	PinCode     string
	IsDefault   bool
	Landmark    string
}

// UpdateAddressInput carries a partial update; nil fields are left untouched.
type UpdateAddressInput struct {
	Type        *string
	Name        *string
	PhoneNumber *string
	Line1       *string
	Line2       *string
	City        *string
	State       *string
	PinCode     *string
	IsDefault   *bool
	Landmark    *string
}

type Repository interface {
	Create(ctx context.Context, in CreateAddressInput) (*domain.Address, error)
	GetByID(ctx context.Context, id string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, id string, in UpdateAddressInput) (*domain.Address, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) (*domain.Address, error)
}
