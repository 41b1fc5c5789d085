package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
}

// Apply inserts demo catalog rows for manual testing. Idempotent: a product
// is inserted only if no row with the same name exists yet.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Victorian Doll",
			Description: "Hand-painted porcelain doll in a Victorian dress",
			Price:       "79.90",
		},
		{
			Name:        "Tea Set Miniature",
			Description: "Six-piece porcelain tea set, dollhouse scale",
			Price:       "24.50",
		},
		{
			Name:        "Ballerina Figurine",
			Description: "Glazed porcelain ballerina on a wooden base",
			Price:       "45.00",
		},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price, image_url)
SELECT $1, $2, $3::numeric, $4
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Price, p.ImageURL)
	return err
}
