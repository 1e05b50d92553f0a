package address

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

const addressColumns = `id::text, user_id, type, name, phone_number, line1, COALESCE(line2, ''), city, state, pin_code, is_default, COALESCE(landmark, ''), created_at, updated_at`

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

func (r *postgresRepo) Create(ctx context.Context, in CreateAddressInput) (*domain.Address, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO addresses (user_id, type, name, phone_number, line1, line2, city, state, pin_code, is_default, landmark)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, NULLIF($11, ''))
RETURNING ` + addressColumns
	addr, err := scanAddress(tx.QueryRow(ctx, q,
		in.UserID, in.Type, in.Name, in.PhoneNumber, in.Line1, in.Line2,
		in.City, in.State, in.PinCode, in.IsDefault, in.Landmark,
	))
	if err != nil {
		r.logger.Printf("address repo: create user_id=%s error=%v", in.UserID, err)
		return nil, err
	}

	if addr.IsDefault {
		if err := clearOtherDefaults(ctx, tx, addr.UserID, addr.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return addr, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	const q = `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`
	addr, err := scanAddress(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("address repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return addr, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	const q = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("address repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		addr, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *addr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateAddressInput) (*domain.Address, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE addresses
SET type         = COALESCE($2, type),
    name         = COALESCE($3, name),
    phone_number = COALESCE($4, phone_number),
    line1        = COALESCE($5, line1),
    line2        = COALESCE($6, line2),
    city         = COALESCE($7, city),
    state        = COALESCE($8, state),
    pin_code     = COALESCE($9, pin_code),
    is_default   = COALESCE($10, is_default),
    landmark     = COALESCE($11, landmark),
    updated_at   = now()
WHERE id = $1
RETURNING ` + addressColumns
	addr, err := scanAddress(tx.QueryRow(ctx, q,
		id, in.Type, in.Name, in.PhoneNumber, in.Line1, in.Line2,
		in.City, in.State, in.PinCode, in.IsDefault, in.Landmark,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("address repo: update id=%s error=%v", id, err)
		return nil, err
	}

	if addr.IsDefault {
		if err := clearOtherDefaults(ctx, tx, addr.UserID, addr.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return addr, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("address repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault promotes one address and demotes the rest in a single
// transaction.
func (r *postgresRepo) SetDefault(ctx context.Context, id string) (*domain.Address, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE addresses
SET is_default = TRUE, updated_at = now()
WHERE id = $1
RETURNING ` + addressColumns
	addr, err := scanAddress(tx.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("address repo: set default id=%s error=%v", id, err)
		return nil, err
	}

	if err := clearOtherDefaults(ctx, tx, addr.UserID, addr.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return addr, nil
}

// clearOtherDefaults keeps the single-default invariant: every other address
// of the user loses its default flag in the same transaction as the write
// that set one.
func clearOtherDefaults(ctx context.Context, tx pgx.Tx, userID, exceptID string) error {
	_, err := tx.Exec(ctx, `
UPDATE addresses
SET is_default = FALSE, updated_at = now()
WHERE user_id = $1 AND id <> $2 AND is_default
`, userID, exceptID)
	return err
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Type,
		&a.Name,
		&a.PhoneNumber,
		&a.Line1,
		&a.Line2,
		&a.City,
		&a.State,
		&a.PinCode,
		&a.IsDefault,
		&a.Landmark,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
