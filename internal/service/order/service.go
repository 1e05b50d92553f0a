package order

import (
	"context"
	"strings"
	"time"

	"storefront-api/internal/domain"
	orderrepo "storefront-api/internal/repository/order"
)

// DeliveryWindow is added to the order date when the caller does not supply an
// expected delivery date. It is applied once, at creation.
const DeliveryWindow = 7 * 24 * time.Hour

type Service struct {
	repo orderRepo
	now  func() time.Time
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, id, status string, actualDelivery *time.Time) (*domain.Order, error)
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	UserID               string
	Items                []domain.OrderItem
	ShippingAddressID    string
	ShippingCostCents    int64
	TransactionID        string
	ExpectedDeliveryDate time.Time
	Notes                string
}

// Create persists a new order with status and payment status Pending. Item
// prices are taken as given: they are the snapshot captured by the caller and
// are never recomputed from the catalog afterwards.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, domain.Validation("user is required")
	}
	if len(in.Items) == 0 {
		return nil, domain.Validation("order must contain at least one item")
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.Validation("quantity cannot be less than 1")
		}
		if item.PriceCents <= 0 {
			return nil, domain.Validation("item price is required")
		}
	}
	if strings.TrimSpace(in.ShippingAddressID) == "" {
		return nil, domain.Validation("shipping address is required")
	}
	if strings.TrimSpace(in.TransactionID) == "" {
		return nil, domain.Validation("transaction id is required")
	}

	var total int64
	for _, item := range in.Items {
		total += item.PriceCents * int64(item.Quantity)
	}
	total += in.ShippingCostCents

	orderDate := s.now().UTC()
	expected := in.ExpectedDeliveryDate
	if expected.IsZero() {
		expected = orderDate.Add(DeliveryWindow)
	}

	return s.repo.Create(ctx, orderrepo.CreateOrderInput{
		UserID:               in.UserID,
		Items:                in.Items,
		ShippingAddressID:    in.ShippingAddressID,
		TotalCents:           total,
		ShippingCostCents:    in.ShippingCostCents,
		TransactionID:        in.TransactionID,
		OrderDate:            orderDate,
		ExpectedDeliveryDate: expected,
		Notes:                in.Notes,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SetStatus moves an order to the given status. Setting Delivered stamps the
// actual delivery date. Apart from the cancel-after-deliver guard in Cancel,
// transitions are unguarded; there is deliberately no full transition table.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.Validation("invalid order status: " + status)
	}
	var delivered *time.Time
	if status == domain.OrderStatusDelivered {
		now := s.now().UTC()
		delivered = &now
	}
	return s.repo.SetStatus(ctx, id, status, delivered)
}

// Cancel marks an order Cancelled unless it has already been delivered.
func (s *Service) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	ord, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord.Status == domain.OrderStatusDelivered {
		return nil, domain.Conflict("cannot cancel delivered order")
	}
	return s.repo.SetStatus(ctx, id, domain.OrderStatusCancelled, nil)
}
