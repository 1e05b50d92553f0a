package product

import (
	"context"
	"testing"

	"storefront-api/internal/domain"
	productrepo "storefront-api/internal/repository/product"
)

type stubRepo struct {
	products   []domain.Product
	total      int
	listErr    error
	lastList   productrepo.ListInput
	product    *domain.Product
	getErr     error
	ratingErr  error
	lastRating struct {
		productID string
		userID    string
		rating    int
		review    string
	}
	lastLimit int
}

func (s *stubRepo) List(_ context.Context, in productrepo.ListInput) ([]domain.Product, int, error) {
	s.lastList = in
	return s.products, s.total, s.listErr
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.getErr
}

func (s *stubRepo) ListByCategory(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubRepo) HotAndNew(_ context.Context, limit int) ([]domain.Product, error) {
	s.lastLimit = limit
	return s.products, s.listErr
}

func (s *stubRepo) Evergreen(_ context.Context, limit int) ([]domain.Product, error) {
	s.lastLimit = limit
	return s.products, s.listErr
}

func (s *stubRepo) AddRating(_ context.Context, productID, userID string, rating int, review string) error {
	s.lastRating.productID = productID
	s.lastRating.userID = userID
	s.lastRating.rating = rating
	s.lastRating.review = review
	return s.ratingErr
}

func (s *stubRepo) IncrementSales(_ context.Context, _ string, _ int) error {
	return nil
}

func (s *stubRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func TestServiceListDefaultsPageAndLimit(t *testing.T) {
	repo := &stubRepo{total: 0}
	svc := New(repo)

	got, err := svc.List(context.Background(), productrepo.ListInput{Page: -3, Limit: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastList.Page != 1 || repo.lastList.Limit != 10 {
		t.Fatalf("expected page 1 limit 10, got %+v", repo.lastList)
	}
	if got.Products == nil {
		t.Fatalf("products must be an empty slice, not nil")
	}
	if got.Pages != 0 || got.Total != 0 {
		t.Fatalf("unexpected counts: %+v", got)
	}
}

func TestServiceListPagesMath(t *testing.T) {
	repo := &stubRepo{
		products: []domain.Product{{ID: "p1"}},
		total:    21,
	}
	svc := New(repo)

	got, err := svc.List(context.Background(), productrepo.ListInput{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Pages != 3 {
		t.Fatalf("expected 3 pages for 21 items at limit 10, got %d", got.Pages)
	}
	if got.Page != 2 || got.Total != 21 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestServiceCuratedShelvesUseFixedLimit(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	if _, err := svc.HotAndNew(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != curatedLimit {
		t.Fatalf("expected limit %d, got %d", curatedLimit, repo.lastLimit)
	}

	if _, err := svc.Evergreen(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != curatedLimit {
		t.Fatalf("expected limit %d, got %d", curatedLimit, repo.lastLimit)
	}
}

func TestServiceAddRatingValidation(t *testing.T) {
	svc := New(&stubRepo{})

	if err := svc.AddRating(context.Background(), "p1", " ", 3, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing user, got %v", err)
	}
	if err := svc.AddRating(context.Background(), "p1", "u1", 0, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for rating 0, got %v", err)
	}
	if err := svc.AddRating(context.Background(), "p1", "u1", 6, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for rating 6, got %v", err)
	}
}

func TestServiceAddRatingPassesThrough(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	if err := svc.AddRating(context.Background(), "p1", "u1", 4, "solid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastRating.productID != "p1" || repo.lastRating.userID != "u1" {
		t.Fatalf("rating ids not passed through: %+v", repo.lastRating)
	}
	if repo.lastRating.rating != 4 || repo.lastRating.review != "solid" {
		t.Fatalf("rating body not passed through: %+v", repo.lastRating)
	}
}

func TestServiceAddRatingConflictPropagates(t *testing.T) {
	repo := &stubRepo{ratingErr: domain.Conflict("product already reviewed")}
	svc := New(repo)

	err := svc.AddRating(context.Background(), "p1", "u1", 4, "")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
