package wishlist

import (
	"context"
	"errors"
	"testing"

	"storefront-api/internal/domain"
)

type stubRepo struct {
	wishlist      *domain.Wishlist
	err           error
	lastUserID    string
	lastProductID string
	addCalled     bool
	removeCalled  bool
}

func (s *stubRepo) GetOrCreate(_ context.Context, userID string) (*domain.Wishlist, error) {
	s.lastUserID = userID
	return s.wishlist, s.err
}

func (s *stubRepo) AddProduct(_ context.Context, userID, productID string) (*domain.Wishlist, error) {
	s.addCalled = true
	s.lastUserID = userID
	s.lastProductID = productID
	return s.wishlist, s.err
}

func (s *stubRepo) RemoveProduct(_ context.Context, userID, productID string) (*domain.Wishlist, error) {
	s.removeCalled = true
	s.lastUserID = userID
	s.lastProductID = productID
	return s.wishlist, s.err
}

type stubCatalog struct {
	product *domain.Product
	err     error
}

func (s *stubCatalog) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func TestServiceAddValidation(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{}}

	_, err := svc.Add(context.Background(), "u1", "  ")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.addCalled {
		t.Fatalf("repo must not be called for empty product id")
	}
}

func TestServiceAddUnknownProduct(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{err: domain.ErrNotFound}}

	_, err := svc.Add(context.Background(), "u1", "p-missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.addCalled {
		t.Fatalf("wishlist must not change when the product does not exist")
	}
}

func TestServiceAdd(t *testing.T) {
	repo := &stubRepo{wishlist: &domain.Wishlist{ID: "w1", UserID: "u1"}}
	catalog := &stubCatalog{product: &domain.Product{ID: "p1"}}
	svc := &Service{repo: repo, catalog: catalog}

	got, err := svc.Add(context.Background(), "u1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "w1" {
		t.Fatalf("expected wishlist back, got %+v", got)
	}
	if !repo.addCalled || repo.lastProductID != "p1" {
		t.Fatalf("expected add of p1, got called=%v product=%q", repo.addCalled, repo.lastProductID)
	}
}

func TestServiceRemovePassesThrough(t *testing.T) {
	repo := &stubRepo{wishlist: &domain.Wishlist{ID: "w1"}}
	svc := &Service{repo: repo, catalog: &stubCatalog{}}

	if _, err := svc.Remove(context.Background(), "u1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.removeCalled || repo.lastProductID != "p1" {
		t.Fatalf("expected remove of p1, got called=%v product=%q", repo.removeCalled, repo.lastProductID)
	}
}

func TestServiceRemoveWithoutWishlist(t *testing.T) {
	svc := &Service{repo: &stubRepo{err: domain.ErrNotFound}, catalog: &stubCatalog{}}

	_, err := svc.Remove(context.Background(), "u1", "p1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
