package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"storefront-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id::text, user_id, shipping_address_id::text, total_cents, shipping_cost_cents, status, payment_status, transaction_id, order_date, expected_delivery_date, actual_delivery_date, COALESCE(tracking_number, ''), COALESCE(notes, '')`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (user_id, shipping_address_id, total_cents, shipping_cost_cents, status, payment_status, transaction_id, order_date, expected_delivery_date, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))
RETURNING ` + orderColumns
	ord, err := scanOrder(tx.QueryRow(ctx, q,
		in.UserID,
		in.ShippingAddressID,
		in.TotalCents,
		in.ShippingCostCents,
		domain.OrderStatusPending,
		domain.PaymentStatusPending,
		in.TransactionID,
		in.OrderDate,
		in.ExpectedDeliveryDate,
		in.Notes,
	))
	if err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", in.UserID, err)
		return nil, err
	}

	for _, item := range in.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price_cents)
VALUES ($1, $2, $3, $4)
`, ord.ID, item.ProductID, item.Quantity, item.PriceCents); err != nil {
			r.logger.Printf("order repo: create item order_id=%s product_id=%s error=%v", ord.ID, item.ProductID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	ord.Items = in.Items
	return ord, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	ord, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	if err := r.populate(ctx, ord); err != nil {
		return nil, err
	}
	return ord, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := r.populate(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, id, status string, actualDelivery *time.Time) (*domain.Order, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
UPDATE orders
SET status = $2,
    actual_delivery_date = COALESCE($3, actual_delivery_date)
WHERE id = $1
RETURNING ` + orderColumns
	ord, err := scanOrder(r.pool.QueryRow(ctx, q, id, status, actualDelivery))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: set status id=%s status=%s error=%v", id, status, err)
		return nil, err
	}
	if err := r.populate(ctx, ord); err != nil {
		return nil, err
	}
	return ord, nil
}

// populate loads line items (with still-resolvable products) and the shipping
// address. A deleted address leaves ShippingAddress nil; the order itself is
// the historical record, its snapshot prices do not depend on either lookup.
func (r *postgresRepo) populate(ctx context.Context, ord *domain.Order) error {
	rows, err := r.pool.Query(ctx, `
SELECT oi.product_id::text, oi.quantity, oi.price_cents,
       p.id::text, p.name, COALESCE(p.description, ''), p.category, p.price_cents, p.stock,
       COALESCE(p.image_url, ''), p.total_sales, p.average_rating, p.created_at
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
`, ord.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	ord.Items = nil
	for rows.Next() {
		var (
			item domain.OrderItem
			p    nullableProduct
		)
		if err := rows.Scan(
			&item.ProductID, &item.Quantity, &item.PriceCents,
			&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents, &p.Stock,
			&p.ImageURL, &p.TotalSales, &p.AverageRating, &p.CreatedAt,
		); err != nil {
			return err
		}
		item.Product = p.toDomain()
		ord.Items = append(ord.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var addr domain.Address
	var line2, landmark *string
	err = r.pool.QueryRow(ctx, `
SELECT id::text, user_id, type, name, phone_number, line1, line2, city, state, pin_code, is_default, landmark, created_at, updated_at
FROM addresses
WHERE id = $1
`, ord.ShippingAddressID).Scan(
		&addr.ID, &addr.UserID, &addr.Type, &addr.Name, &addr.PhoneNumber,
		&addr.Line1, &line2, &addr.City, &addr.State, &addr.PinCode,
		&addr.IsDefault, &landmark, &addr.CreatedAt, &addr.UpdatedAt,
	)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// address deleted after the order was placed
	case err != nil:
		return err
	default:
		if line2 != nil {
			addr.Line2 = *line2
		}
		if landmark != nil {
			addr.Landmark = *landmark
		}
		ord.ShippingAddress = &addr
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.ShippingAddressID,
		&o.TotalCents,
		&o.ShippingCostCents,
		&o.Status,
		&o.PaymentStatus,
		&o.TransactionID,
		&o.OrderDate,
		&o.ExpectedDeliveryDate,
		&o.ActualDeliveryDate,
		&o.TrackingNumber,
		&o.Notes,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// nullableProduct scans the LEFT JOIN side of the item query.
type nullableProduct struct {
	ID            *string
	Name          *string
	Description   *string
	Category      *string
	PriceCents    *int64
	Stock         *int
	ImageURL      *string
	TotalSales    *int
	AverageRating *float64
	CreatedAt     *time.Time
}

func (p nullableProduct) toDomain() *domain.Product {
	if p.ID == nil {
		return nil
	}
	out := &domain.Product{ID: *p.ID}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.PriceCents != nil {
		out.PriceCents = *p.PriceCents
	}
	if p.Stock != nil {
		out.Stock = *p.Stock
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	if p.TotalSales != nil {
		out.TotalSales = *p.TotalSales
	}
	if p.AverageRating != nil {
		out.AverageRating = *p.AverageRating
	}
	if p.CreatedAt != nil {
		out.CreatedAt = *p.CreatedAt
	}
	return out
}
