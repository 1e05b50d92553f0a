package product

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"

	"storefront-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id::text, name, COALESCE(description, ''), category, price_cents, stock, COALESCE(image_url, ''), total_sales, average_rating, created_at`

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

func (r *postgresRepo) List(ctx context.Context, in ListInput) ([]domain.Product, int, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = 10
	}

	where := ``
	args := []interface{}{}
	if in.Category != "" {
		where = `WHERE category = $1`
		args = append(args, in.Category)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	q := `SELECT ` + productColumns + ` FROM products ` + where + ` ORDER BY ` + orderBy(in.Sort)
	offsetPos := len(args) + 1
	q += ` LIMIT $` + strconv.Itoa(offsetPos) + ` OFFSET $` + strconv.Itoa(offsetPos+1)
	args = append(args, in.Limit, (in.Page-1)*in.Limit)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	result, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, category)
	if err != nil {
		r.logger.Printf("product repo: list category=%s error=%v", category, err)
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *postgresRepo) HotAndNew(ctx context.Context, limit int) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category = 'Hot and New' ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *postgresRepo) Evergreen(ctx context.Context, limit int) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category = 'Evergreen' ORDER BY total_sales DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *postgresRepo) AddRating(ctx context.Context, productID, userID string, rating int, review string) error {
	if uuid.Validate(productID) != nil {
		return domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	cmd, err := tx.Exec(ctx, `
INSERT INTO product_ratings (product_id, user_id, rating, review)
VALUES ($1, $2, $3, NULLIF($4, ''))
ON CONFLICT (product_id, user_id) DO NOTHING
`, productID, userID, rating, review)
	if err != nil {
		r.logger.Printf("product repo: add rating product_id=%s user_id=%s error=%v", productID, userID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.Conflict("product already reviewed")
	}

	if _, err := tx.Exec(ctx, `
UPDATE products
SET average_rating = COALESCE((
	SELECT AVG(rating) FROM product_ratings WHERE product_id = $1
), 0)
WHERE id = $1
`, productID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) IncrementSales(ctx context.Context, productID string, quantity int) error {
	if uuid.Validate(productID) != nil {
		return domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE products SET total_sales = total_sales + $2 WHERE id = $1
`, productID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, category, price_cents, stock, image_url)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''))
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock,
    image_url = EXCLUDED.image_url
RETURNING ` + productColumns
	res, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock, p.ImageURL,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert id=%s name=%q error=%v", p.ID, p.Name, err)
		return nil, err
	}
	return res, nil
}

func orderBy(sort string) string {
	switch sort {
	case "price":
		return "price_cents ASC"
	case "-price":
		return "price_cents DESC"
	case "-totalSales":
		return "total_sales DESC"
	default:
		return "created_at DESC"
	}
}

func collect(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.PriceCents,
		&p.Stock,
		&p.ImageURL,
		&p.TotalSales,
		&p.AverageRating,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
