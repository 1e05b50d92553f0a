package cart

import (
	"context"
	"strings"

	"storefront-api/internal/domain"
	cartrepo "storefront-api/internal/repository/cart"
)

type Service struct {
	repo    cartRepo
	catalog catalog
}

type cartRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, catalog catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

// AddItem puts a product in the user's cart. Adding a product that is already
// a line item replaces its quantity rather than incrementing it.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validation("product id is required")
	}
	if quantity < 1 {
		return nil, domain.Validation("quantity cannot be less than 1")
	}
	if _, err := s.catalog.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.UpsertItem(ctx, userID, productID, quantity)
}

func (s *Service) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.Validation("quantity cannot be less than 1")
	}
	return s.repo.UpdateItemQuantity(ctx, userID, productID, quantity)
}

// RemoveItem is idempotent: removing a product that is not in the cart
// succeeds and returns the cart unchanged.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	return s.repo.RemoveItem(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}
