package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"storefront-api/internal/domain"
	ordersvc "storefront-api/internal/service/order"
)

// Service is the order placement workflow: it validates the shipping address
// and cart contents, snapshots current catalog prices into a new order, clears
// the cart and bumps product sales counters. The side effects are strictly
// ordered: the order is created first so that a later failure never erases
// evidence of a placed order, then the cart is cleared, then sales counters
// are updated.
type Service struct {
	addresses addressStore
	catalog   catalog
	carts     cartStore
	orders    orderPlacer
	logger    *log.Logger
}

type addressStore interface {
	GetByID(ctx context.Context, id string) (*domain.Address, error)
}

type catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	IncrementSales(ctx context.Context, productID string, quantity int) error
}

type cartStore interface {
	Clear(ctx context.Context, userID string) error
}

type orderPlacer interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
}

func New(addresses addressStore, catalog catalog, carts cartStore, orders orderPlacer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		addresses: addresses,
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
		logger:    logger,
	}
}

type PlaceInput struct {
	UserID            string      `json:"userId"`
	Items             []PlaceItem `json:"items"`
	ShippingAddressID string      `json:"shippingAddressId"`
	ShippingCostCents int64       `json:"shippingCostCents"`
	TransactionID     string      `json:"transactionId"`
	Notes             string      `json:"notes"`
}

type PlaceItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Place converts a cart + address + payment reference into a persisted order.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*domain.Order, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, domain.Validation("user is required")
	}
	if len(in.Items) == 0 {
		return nil, domain.Validation("order must contain at least one item")
	}
	if strings.TrimSpace(in.TransactionID) == "" {
		return nil, domain.Validation("transaction id is required")
	}
	if strings.TrimSpace(in.ShippingAddressID) == "" {
		return nil, domain.Validation("shipping address is required")
	}

	addr, err := s.addresses.GetByID(ctx, in.ShippingAddressID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validation("shipping address not found")
		}
		return nil, err
	}
	if addr.UserID != in.UserID {
		return nil, domain.Validation("shipping address not found")
	}

	// Snapshot current catalog prices. Whatever the catalog says right now is
	// what the order records forever.
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.Validation("quantity cannot be less than 1")
		}
		product, err := s.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Validation("product " + item.ProductID + " not found")
			}
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			PriceCents: product.PriceCents,
		})
	}

	ord, err := s.orders.Create(ctx, ordersvc.CreateInput{
		UserID:            in.UserID,
		Items:             items,
		ShippingAddressID: in.ShippingAddressID,
		ShippingCostCents: in.ShippingCostCents,
		TransactionID:     in.TransactionID,
		Notes:             in.Notes,
	})
	if err != nil {
		return nil, err
	}

	// From here on the order exists; the remaining steps are best-effort and a
	// failure must not surface as a placement failure (a retry would duplicate
	// the order).
	if err := s.carts.Clear(ctx, in.UserID); err != nil {
		s.logger.Printf("checkout: clear cart user_id=%s order_id=%s error=%v", in.UserID, ord.ID, err)
	}

	for _, item := range items {
		if err := s.catalog.IncrementSales(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Printf("checkout: increment sales product_id=%s order_id=%s error=%v", item.ProductID, ord.ID, err)
		}
	}

	return ord, nil
}
