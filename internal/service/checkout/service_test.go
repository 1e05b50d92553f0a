package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"storefront-api/internal/domain"
	ordersvc "storefront-api/internal/service/order"
)

type stubAddresses struct {
	address *domain.Address
	err     error
	lastID  string
}

func (s *stubAddresses) GetByID(_ context.Context, id string) (*domain.Address, error) {
	s.lastID = id
	return s.address, s.err
}

type stubCatalog struct {
	products     map[string]*domain.Product
	getErr       error
	incrementErr error
	increments   []string
	incQuantity  map[string]int
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubCatalog) IncrementSales(_ context.Context, productID string, quantity int) error {
	s.increments = append(s.increments, productID)
	if s.incQuantity == nil {
		s.incQuantity = map[string]int{}
	}
	s.incQuantity[productID] = quantity
	return s.incrementErr
}

type stubCarts struct {
	err     error
	cleared []string
}

func (s *stubCarts) Clear(_ context.Context, userID string) error {
	s.cleared = append(s.cleared, userID)
	return s.err
}

type stubOrders struct {
	order      *domain.Order
	err        error
	lastCreate ordersvc.CreateInput
	created    bool
}

func (s *stubOrders) Create(_ context.Context, in ordersvc.CreateInput) (*domain.Order, error) {
	s.created = true
	s.lastCreate = in
	return s.order, s.err
}

func newTestService(addresses *stubAddresses, catalog *stubCatalog, carts *stubCarts, orders *stubOrders) *Service {
	return &Service{
		addresses: addresses,
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
		logger:    log.New(io.Discard, "", 0),
	}
}

func validPlaceInput() PlaceInput {
	return PlaceInput{
		UserID:            "u1",
		Items:             []PlaceItem{{ProductID: "p1", Quantity: 2}},
		ShippingAddressID: "a1",
		ShippingCostCents: 500,
		TransactionID:     "txn-1",
	}
}

func TestServicePlaceValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*PlaceInput)
		wantMsg string
	}{
		{"missing user", func(in *PlaceInput) { in.UserID = " " }, "user is required"},
		{"no items", func(in *PlaceInput) { in.Items = nil }, "order must contain at least one item"},
		{"missing transaction", func(in *PlaceInput) { in.TransactionID = "" }, "transaction id is required"},
		{"missing address", func(in *PlaceInput) { in.ShippingAddressID = "" }, "shipping address is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := &stubOrders{}
			svc := newTestService(&stubAddresses{}, &stubCatalog{}, &stubCarts{}, orders)
			in := validPlaceInput()
			tc.mutate(&in)
			_, err := svc.Place(context.Background(), in)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, err.Error())
			}
			if orders.created {
				t.Fatalf("no order must be created on validation failure")
			}
		})
	}
}

func TestServicePlaceUnknownAddress(t *testing.T) {
	orders := &stubOrders{}
	svc := newTestService(&stubAddresses{err: domain.ErrNotFound}, &stubCatalog{}, &stubCarts{}, orders)

	_, err := svc.Place(context.Background(), validPlaceInput())
	if !domain.IsValidation(err) || err.Error() != "shipping address not found" {
		t.Fatalf("expected address validation error, got %v", err)
	}
	if orders.created {
		t.Fatalf("no order must be created for an unknown address")
	}
}

func TestServicePlaceForeignAddress(t *testing.T) {
	addresses := &stubAddresses{address: &domain.Address{ID: "a1", UserID: "someone-else"}}
	svc := newTestService(addresses, &stubCatalog{}, &stubCarts{}, &stubOrders{})

	_, err := svc.Place(context.Background(), validPlaceInput())
	if !domain.IsValidation(err) || err.Error() != "shipping address not found" {
		t.Fatalf("another user's address must look like a missing one, got %v", err)
	}
}

func TestServicePlaceUnknownProduct(t *testing.T) {
	addresses := &stubAddresses{address: &domain.Address{ID: "a1", UserID: "u1"}}
	orders := &stubOrders{}
	svc := newTestService(addresses, &stubCatalog{products: map[string]*domain.Product{}}, &stubCarts{}, orders)

	_, err := svc.Place(context.Background(), validPlaceInput())
	if !domain.IsValidation(err) || err.Error() != "product p1 not found" {
		t.Fatalf("expected product validation error, got %v", err)
	}
	if orders.created {
		t.Fatalf("no order must be created for an unknown product")
	}
}

func TestServicePlaceSnapshotsCatalogPrices(t *testing.T) {
	addresses := &stubAddresses{address: &domain.Address{ID: "a1", UserID: "u1"}}
	catalog := &stubCatalog{products: map[string]*domain.Product{
		"p1": {ID: "p1", PriceCents: 1500},
		"p2": {ID: "p2", PriceCents: 9900},
	}}
	carts := &stubCarts{}
	orders := &stubOrders{order: &domain.Order{ID: "o1"}}
	svc := newTestService(addresses, catalog, carts, orders)

	in := validPlaceInput()
	in.Items = append(in.Items, PlaceItem{ProductID: "p2", Quantity: 1})

	got, err := svc.Place(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "o1" {
		t.Fatalf("expected created order back, got %+v", got)
	}

	if len(orders.lastCreate.Items) != 2 {
		t.Fatalf("expected 2 snapshot items, got %d", len(orders.lastCreate.Items))
	}
	if orders.lastCreate.Items[0].PriceCents != 1500 || orders.lastCreate.Items[1].PriceCents != 9900 {
		t.Fatalf("prices not snapshotted from catalog: %+v", orders.lastCreate.Items)
	}
	if orders.lastCreate.ShippingCostCents != 500 || orders.lastCreate.TransactionID != "txn-1" {
		t.Fatalf("order input not passed through: %+v", orders.lastCreate)
	}

	if len(carts.cleared) != 1 || carts.cleared[0] != "u1" {
		t.Fatalf("expected cart cleared for u1, got %v", carts.cleared)
	}
	if len(catalog.increments) != 2 || catalog.increments[0] != "p1" || catalog.increments[1] != "p2" {
		t.Fatalf("expected sales increments for p1 then p2, got %v", catalog.increments)
	}
	if catalog.incQuantity["p1"] != 2 || catalog.incQuantity["p2"] != 1 {
		t.Fatalf("unexpected increment quantities: %v", catalog.incQuantity)
	}
}

func TestServicePlaceZeroQuantityItem(t *testing.T) {
	addresses := &stubAddresses{address: &domain.Address{ID: "a1", UserID: "u1"}}
	svc := newTestService(addresses, &stubCatalog{}, &stubCarts{}, &stubOrders{})

	in := validPlaceInput()
	in.Items[0].Quantity = 0

	_, err := svc.Place(context.Background(), in)
	if !domain.IsValidation(err) || err.Error() != "quantity cannot be less than 1" {
		t.Fatalf("expected quantity validation error, got %v", err)
	}
}

func TestServicePlaceToleratesCartClearFailure(t *testing.T) {
	addresses := &stubAddresses{address: &domain.Address{ID: "a1", UserID: "u1"}}
	catalog := &stubCatalog{products: map[string]*domain.Product{"p1": {ID: "p1", PriceCents: 1500}}}
	carts := &stubCarts{err: errors.New("db down")}
	orders := &stubOrders{order: &domain.Order{ID: "o1"}}
	svc := newTestService(addresses, catalog, carts, orders)

	got, err := svc.Place(context.Background(), validPlaceInput())
	if err != nil {
		t.Fatalf("clear failure must not fail placement: %v", err)
	}
	if got.ID != "o1" {
		t.Fatalf("expected order back, got %+v", got)
	}
	// Sales counters still run after the failed clear.
	if len(catalog.increments) != 1 {
		t.Fatalf("expected sales increment despite clear failure, got %v", catalog.increments)
	}
}

func TestServicePlaceToleratesSalesCounterFailure(t *testing.T) {
	addresses := &stubAddresses{address: &domain.Address{ID: "a1", UserID: "u1"}}
	catalog := &stubCatalog{
		products:     map[string]*domain.Product{"p1": {ID: "p1", PriceCents: 1500}},
		incrementErr: errors.New("db down"),
	}
	orders := &stubOrders{order: &domain.Order{ID: "o1"}}
	svc := newTestService(addresses, catalog, &stubCarts{}, orders)

	got, err := svc.Place(context.Background(), validPlaceInput())
	if err != nil {
		t.Fatalf("sales counter failure must not fail placement: %v", err)
	}
	if got.ID != "o1" {
		t.Fatalf("expected order back, got %+v", got)
	}
}

func TestServicePlaceOrderCreationFailure(t *testing.T) {
	addresses := &stubAddresses{address: &domain.Address{ID: "a1", UserID: "u1"}}
	catalog := &stubCatalog{products: map[string]*domain.Product{"p1": {ID: "p1", PriceCents: 1500}}}
	carts := &stubCarts{}
	orders := &stubOrders{err: errors.New("insert failed")}
	svc := newTestService(addresses, catalog, carts, orders)

	_, err := svc.Place(context.Background(), validPlaceInput())
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(carts.cleared) != 0 || len(catalog.increments) != 0 {
		t.Fatalf("no side effects may run when order creation fails")
	}
}
