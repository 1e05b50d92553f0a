package wishlist

import (
	"context"
	"strings"

	"storefront-api/internal/domain"
	wishlistrepo "storefront-api/internal/repository/wishlist"
)

type Service struct {
	repo    wishlistRepo
	catalog catalog
}

type wishlistRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
	RemoveProduct(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
}

type catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo wishlistrepo.Repository, catalog catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *Service) Add(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validation("product id is required")
	}
	if _, err := s.catalog.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.AddProduct(ctx, userID, productID)
}

// Remove drops a product from the wishlist; removing an absent product is not
// an error, but a user without a wishlist yields ErrNotFound.
func (s *Service) Remove(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	return s.repo.RemoveProduct(ctx, userID, productID)
}
