package wishlist

import (
	"context"
	"errors"
	"io"
	"log"

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

func (r *postgresRepo) GetOrCreate(ctx context.Context, userID string) (*domain.Wishlist, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
INSERT INTO wishlists (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET updated_at = wishlists.updated_at
RETURNING id::text
`, userID).Scan(&id)
	if err != nil {
		r.logger.Printf("wishlist repo: ensure user_id=%s error=%v", userID, err)
		return nil, err
	}
	return r.fetch(ctx, userID)
}

func (r *postgresRepo) AddProduct(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var wishlistID string
	if err := tx.QueryRow(ctx, `
INSERT INTO wishlists (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
RETURNING id::text
`, userID).Scan(&wishlistID); err != nil {
		r.logger.Printf("wishlist repo: add user_id=%s error=%v", userID, err)
		return nil, err
	}

	// Adding an already-present product is a no-op.
	if _, err := tx.Exec(ctx, `
INSERT INTO wishlist_items (wishlist_id, product_id)
VALUES ($1, $2)
ON CONFLICT (wishlist_id, product_id) DO NOTHING
`, wishlistID, productID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.fetch(ctx, userID)
}

func (r *postgresRepo) RemoveProduct(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	var wishlistID string
	err := r.pool.QueryRow(ctx, `SELECT id::text FROM wishlists WHERE user_id = $1`, userID).Scan(&wishlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("wishlist repo: remove user_id=%s error=%v", userID, err)
		return nil, err
	}

	// An unparseable product id cannot be on the list; removal stays a no-op.
	if uuid.Validate(productID) == nil {
		if _, err := r.pool.Exec(ctx, `
DELETE FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2
`, wishlistID, productID); err != nil {
			return nil, err
		}
	}
	return r.fetch(ctx, userID)
}

func (r *postgresRepo) fetch(ctx context.Context, userID string) (*domain.Wishlist, error) {
	var wl domain.Wishlist
	err := r.pool.QueryRow(ctx, `
SELECT id::text, user_id, updated_at FROM wishlists WHERE user_id = $1
`, userID).Scan(&wl.ID, &wl.UserID, &wl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT p.id::text, p.name, COALESCE(p.description, ''), p.category, p.price_cents, p.stock,
       COALESCE(p.image_url, ''), p.total_sales, p.average_rating, p.created_at
FROM wishlist_items wi
JOIN products p ON p.id = wi.product_id
WHERE wi.wishlist_id = $1
ORDER BY wi.added_at ASC
`, wl.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wl.Products = []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents, &p.Stock,
			&p.ImageURL, &p.TotalSales, &p.AverageRating, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		wl.Products = append(wl.Products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &wl, nil
}
