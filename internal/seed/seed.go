package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DemoUserID is the user the seeded addresses belong to. The API has no user
// store of its own, so any opaque id works; this one is easy to spot in logs.
const DemoUserID = "demo-user"

type productSeed struct {
	ID          string
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Stock       int
}

type addressSeed struct {
	Type        string
	Name        string
	PhoneNumber string
	Line1       string
	City        string
	State       string
	PinCode     string
	IsDefault   bool
}

// Apply inserts basic seed data for manual testing. Reseeding is idempotent:
// products upsert on id, addresses insert only when absent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			ID:          "0b54a70e-5ac3-4f71-a59a-95db7c0f1a01",
			Name:        "Wireless Earbuds",
			Description: "In-ear earbuds with 24h battery",
			Category:    "Hot and New",
			PriceCents:  299900,
			Stock:       120,
		},
		{
			ID:          "0b54a70e-5ac3-4f71-a59a-95db7c0f1a02",
			Name:        "Steel Water Bottle",
			Description: "1L insulated bottle",
			Category:    "Evergreen",
			PriceCents:  79900,
			Stock:       300,
		},
		{
			ID:          "0b54a70e-5ac3-4f71-a59a-95db7c0f1a03",
			Name:        "Cotton T-Shirt",
			Description: "Plain crew-neck tee",
			Category:    "Clothing",
			PriceCents:  49900,
			Stock:       80,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	addresses := []addressSeed{
		{
			Type:        "Home",
			Name:        "Demo User",
			PhoneNumber: "9876543210",
			Line1:       "12 MG Road",
			City:        "Bengaluru",
			State:       "Karnataka",
			PinCode:     "560001",
			IsDefault:   true,
		},
		{
			Type:        "Work",
			Name:        "Demo User",
			PhoneNumber: "9876543210",
			Line1:       "4 Residency Road",
			City:        "Bengaluru",
			State:       "Karnataka",
			PinCode:     "560025",
		},
	}

	for _, a := range addresses {
		if err := upsertAddress(ctx, pool, DemoUserID, a); err != nil {
			return fmt.Errorf("upsert address %s: %w", a.Line1, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, category, price_cents, stock)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock)
	return err
}

func upsertAddress(ctx context.Context, pool *pgxpool.Pool, userID string, a addressSeed) error {
	// line1 serves as the natural key for idempotent reseeding
	const q = `
INSERT INTO addresses (user_id, type, name, phone_number, line1, city, state, pin_code, is_default)
SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
WHERE NOT EXISTS (
	SELECT 1 FROM addresses WHERE user_id = $1 AND line1 = $5
)
`
	_, err := pool.Exec(ctx, q, userID, a.Type, a.Name, a.PhoneNumber, a.Line1, a.City, a.State, a.PinCode, a.IsDefault)
	return err
}
