package product

import (
	"context"
	"strings"

	"storefront-api/internal/domain"
	productrepo "storefront-api/internal/repository/product"
)

// curatedLimit caps the curated storefront shelves (hot-and-new, evergreen).
const curatedLimit = 10

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// ListResult mirrors the storefront's paginated catalog response.
type ListResult struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int              `json:"total"`
}

func (s *Service) List(ctx context.Context, in productrepo.ListInput) (*ListResult, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = 10
	}
	products, total, err := s.repo.List(ctx, in)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	pages := (total + in.Limit - 1) / in.Limit
	return &ListResult{Products: products, Page: in.Page, Pages: pages, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) HotAndNew(ctx context.Context) ([]domain.Product, error) {
	return s.repo.HotAndNew(ctx, curatedLimit)
}

func (s *Service) Evergreen(ctx context.Context) ([]domain.Product, error) {
	return s.repo.Evergreen(ctx, curatedLimit)
}

func (s *Service) AddRating(ctx context.Context, productID, userID string, rating int, review string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.Validation("user is required")
	}
	if rating < 1 || rating > 5 {
		return domain.Validation("rating must be between 1 and 5")
	}
	return s.repo.AddRating(ctx, productID, userID, rating, review)
}
