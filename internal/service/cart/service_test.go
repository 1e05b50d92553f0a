package cart

import (
	"context"
	"errors"
	"testing"

	"storefront-api/internal/domain"
)

type stubRepo struct {
	cart           *domain.Cart
	err            error
	lastUserID     string
	lastProductID  string
	lastQuantity   int
	upsertCalled   bool
	updateCalled   bool
	removeCalled   bool
	clearErr       error
	clearedUserID  string
}

func (s *stubRepo) GetOrCreate(_ context.Context, userID string) (*domain.Cart, error) {
	s.lastUserID = userID
	return s.cart, s.err
}

func (s *stubRepo) UpsertItem(_ context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	s.upsertCalled = true
	s.lastUserID = userID
	s.lastProductID = productID
	s.lastQuantity = quantity
	return s.cart, s.err
}

func (s *stubRepo) UpdateItemQuantity(_ context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	s.updateCalled = true
	s.lastUserID = userID
	s.lastProductID = productID
	s.lastQuantity = quantity
	return s.cart, s.err
}

func (s *stubRepo) RemoveItem(_ context.Context, userID, productID string) (*domain.Cart, error) {
	s.removeCalled = true
	s.lastUserID = userID
	s.lastProductID = productID
	return s.cart, s.err
}

func (s *stubRepo) Clear(_ context.Context, userID string) error {
	s.clearedUserID = userID
	return s.clearErr
}

type stubCatalog struct {
	product *domain.Product
	err     error
	lastID  string
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.lastID = id
	return s.product, s.err
}

func TestServiceAddItemValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, catalog: &stubCatalog{}}

	if _, err := svc.AddItem(context.Background(), "u1", "  ", 1); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty product id, got %v", err)
	}
	if _, err := svc.AddItem(context.Background(), "u1", "p1", 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{err: domain.ErrNotFound}}

	_, err := svc.AddItem(context.Background(), "u1", "p-missing", 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.upsertCalled {
		t.Fatalf("cart must not be touched when the product does not exist")
	}
}

func TestServiceAddItemReplacesQuantity(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "c1", UserID: "u1"}}
	catalog := &stubCatalog{product: &domain.Product{ID: "p1", PriceCents: 499}}
	svc := &Service{repo: repo, catalog: catalog}

	got, err := svc.AddItem(context.Background(), "u1", "p1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "c1" {
		t.Fatalf("expected cart back, got %+v", got)
	}
	if catalog.lastID != "p1" {
		t.Fatalf("expected catalog lookup for p1, got %q", catalog.lastID)
	}
	if !repo.upsertCalled || repo.lastQuantity != 3 {
		t.Fatalf("expected upsert with quantity 3, got called=%v quantity=%d", repo.upsertCalled, repo.lastQuantity)
	}
}

func TestServiceUpdateItemQuantityValidation(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{}}

	_, err := svc.UpdateItemQuantity(context.Background(), "u1", "p1", 0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.updateCalled {
		t.Fatalf("repo must not be called for invalid quantity")
	}
}

func TestServiceUpdateItemQuantityPassesThrough(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "c1"}}
	svc := &Service{repo: repo, catalog: &stubCatalog{}}

	if _, err := svc.UpdateItemQuantity(context.Background(), "u1", "p1", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastUserID != "u1" || repo.lastProductID != "p1" || repo.lastQuantity != 5 {
		t.Fatalf("unexpected repo args: user=%q product=%q quantity=%d", repo.lastUserID, repo.lastProductID, repo.lastQuantity)
	}
}

func TestServiceRemoveItemPassesThrough(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "c1"}}
	svc := &Service{repo: repo, catalog: &stubCatalog{}}

	got, err := svc.RemoveItem(context.Background(), "u1", "p-gone")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "c1" {
		t.Fatalf("expected cart back, got %+v", got)
	}
	if !repo.removeCalled || repo.lastProductID != "p-gone" {
		t.Fatalf("expected remove of p-gone, got called=%v product=%q", repo.removeCalled, repo.lastProductID)
	}
}

func TestServiceClear(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{}}

	if err := svc.Clear(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.clearedUserID != "u1" {
		t.Fatalf("expected clear for u1, got %q", repo.clearedUserID)
	}
}
