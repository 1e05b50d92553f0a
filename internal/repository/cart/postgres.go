package cart

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

func (r *postgresRepo) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cartID, err := ensureCart(ctx, tx, userID)
	if err != nil {
		r.logger.Printf("cart repo: ensure user_id=%s error=%v", userID, err)
		return nil, err
	}
	// Prices may have changed since the last mutation; refresh the total on
	// read as well so the stored amount never goes stale.
	if err := recomputeTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.fetchCart(ctx, userID)
}

func (r *postgresRepo) UpsertItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cartID, err := ensureCart(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	// Re-adding an existing product replaces its quantity.
	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
`, cartID, productID, quantity); err != nil {
		r.logger.Printf("cart repo: upsert item user_id=%s product_id=%s error=%v", userID, productID, err)
		return nil, err
	}

	if err := recomputeTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.fetchCart(ctx, userID)
}

func (r *postgresRepo) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if uuid.Validate(productID) != nil {
		return nil, domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE cart_items ci
SET quantity = $3
FROM carts c
WHERE c.id = ci.cart_id AND c.user_id = $1 AND ci.product_id = $2
`, userID, productID, quantity)
	if err != nil {
		r.logger.Printf("cart repo: update item user_id=%s product_id=%s error=%v", userID, productID, err)
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	cartID, err := cartIDByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := recomputeTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.fetchCart(ctx, userID)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	// An unparseable product id cannot be in the cart; removal stays a no-op.
	if uuid.Validate(productID) != nil {
		return r.GetOrCreate(ctx, userID)
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cartID, err := ensureCart(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	// Removing an item that is not in the cart is not an error.
	if _, err := tx.Exec(ctx, `
DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2
`, cartID, productID); err != nil {
		r.logger.Printf("cart repo: remove item user_id=%s product_id=%s error=%v", userID, productID, err)
		return nil, err
	}

	if err := recomputeTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.fetchCart(ctx, userID)
}

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cartID, err := ensureCart(ctx, tx, userID)
	if err != nil {
		r.logger.Printf("cart repo: clear user_id=%s error=%v", userID, err)
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE carts SET total_cents = 0, updated_at = now() WHERE id = $1`, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) fetchCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, `
SELECT id::text, user_id, total_cents, updated_at
FROM carts
WHERE user_id = $1
`, userID).Scan(&cart.ID, &cart.UserID, &cart.TotalCents, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT ci.product_id::text, ci.quantity,
       p.id::text, p.name, COALESCE(p.description, ''), p.category, p.price_cents, p.stock,
       COALESCE(p.image_url, ''), p.total_sales, p.average_rating, p.created_at
FROM cart_items ci
LEFT JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.added_at ASC
`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item domain.CartItem
			p    nullableProduct
		)
		if err := rows.Scan(
			&item.ProductID,
			&item.Quantity,
			&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents, &p.Stock,
			&p.ImageURL, &p.TotalSales, &p.AverageRating, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Product = p.toDomain()
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ensureCart returns the id of the user's cart, creating it when absent.
func ensureCart(ctx context.Context, tx pgx.Tx, userID string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
RETURNING id::text
`, userID).Scan(&id)
	return id, err
}

func cartIDByUser(ctx context.Context, tx pgx.Tx, userID string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return id, err
}

// nullableProduct scans the LEFT JOIN side of an item query; every column may
// be NULL when the referenced product has been deleted.
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

// recomputeTotal derives total_cents from current catalog prices. The join
// silently skips items whose product no longer exists.
func recomputeTotal(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total_cents = COALESCE((
	SELECT SUM(p.price_cents * ci.quantity)
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.cart_id = $1
), 0),
    updated_at = now()
WHERE id = $1
`, cartID)
	return err
}
