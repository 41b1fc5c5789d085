package product

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{
		pool:   pool,
		logger: logger.With().Str("repo", "product").Logger(),
	}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), price, image_url, created_at
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Msg("list products")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("list products rows")
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, image_url)
VALUES ($1, NULLIF($2, ''), $3, $4)
RETURNING id::text, created_at
`
	out := p
	err := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.Price, p.ImageURL).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", p.Name).Msg("create product")
		return nil, err
	}
	r.logger.Info().Str("id", out.ID).Str("name", out.Name).Msg("product created")
	return &out, nil
}

// Update overwrites name, description and price in place. The image URL is
// replaced only when the caller supplies a non-empty one.
func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2,
    description = NULLIF($3, ''),
    price = $4,
    image_url = CASE WHEN $5 <> '' THEN $5 ELSE image_url END
WHERE id = $1
RETURNING id::text, name, COALESCE(description, ''), price, image_url, created_at
`
	var out domain.Product
	err := r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.Price, p.ImageURL).Scan(
		&out.ID, &out.Name, &out.Description, &out.Price, &out.ImageURL, &out.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("id", p.ID).Msg("update product")
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id).Msg("delete product")
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info().Str("id", id).Msg("product deleted")
	return nil
}
