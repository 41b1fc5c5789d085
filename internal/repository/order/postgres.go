package order

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{
		pool:   pool,
		logger: logger.With().Str("repo", "order").Logger(),
	}
}

// ReplaceForUser deletes the user's draft and inserts the new order inside a
// single transaction. Together with the partial unique index on
// (user_id) WHERE status = 'Open Order' this keeps the one-draft-per-user
// invariant even under concurrent requests.
func (r *postgresRepo) ReplaceForUser(ctx context.Context, in ReplaceOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
DELETE FROM orders
WHERE user_id = $1 AND status = $2
`, in.UserID, domain.StatusOpenOrder); err != nil {
		return nil, err
	}

	var out domain.Order
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (user_id, user_name, total, status)
VALUES ($1, $2, $3, $4)
RETURNING id::text, user_id::text, user_name, total, status, created_at
`, in.UserID, in.UserName, in.Total, in.Status).Scan(
		&out.ID, &out.UserID, &out.UserName, &out.Total, &out.Status, &out.CreatedAt,
	); err != nil {
		return nil, err
	}

	for _, line := range in.Lines {
		var l domain.OrderLine
		if err := tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, product_name, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, product_name, unit_price, quantity
`, out.ID, line.ProductID, line.ProductName, line.UnitPrice, line.Quantity).Scan(
			&l.ID, &l.ProductName, &l.UnitPrice, &l.Quantity,
		); err != nil {
			return nil, err
		}
		l.OrderID = out.ID
		l.ProductID = line.ProductID
		out.Items = append(out.Items, l)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("order_id", out.ID).
		Str("user_id", out.UserID).
		Str("status", out.Status).
		Int("lines", len(out.Items)).
		Msg("order replaced")
	return &out, nil
}

func (r *postgresRepo) GetOpenByUser(ctx context.Context, userID string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, user_name, total, status, created_at
FROM orders
WHERE user_id = $1 AND status = $2
LIMIT 1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, userID, domain.StatusOpenOrder).Scan(
		&o.ID, &o.UserID, &o.UserName, &o.Total, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachLines(ctx, []*domain.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) ListOrderedByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, user_name, total, status, created_at
FROM orders
WHERE user_id = $1 AND status = $2
ORDER BY created_at DESC
`
	return r.listOrders(ctx, q, userID, domain.StatusOrdered)
}

func (r *postgresRepo) ListAllOrdered(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, user_name, total, status, created_at
FROM orders
WHERE status = $1
ORDER BY created_at DESC
`
	return r.listOrders(ctx, q, domain.StatusOrdered)
}

func (r *postgresRepo) DeleteAllOrdered(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE status = $1`, domain.StatusOrdered)
	if err != nil {
		r.logger.Error().Err(err).Msg("delete ordered rows")
		return 0, err
	}
	r.logger.Info().Int64("deleted", cmd.RowsAffected()).Msg("ordered rows deleted")
	return cmd.RowsAffected(), nil
}

func (r *postgresRepo) listOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.UserName, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachLines(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachLines loads the lines for every given order in one query, resolving
// live product details where the catalog row still exists. Lines whose
// product was deleted keep only their snapshot fields.
func (r *postgresRepo) attachLines(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*domain.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	const q = `
SELECT l.id::text, l.order_id::text, l.product_id::text, l.product_name, l.unit_price, l.quantity,
       p.id::text, p.name, COALESCE(p.description, ''), p.price, p.image_url, p.created_at
FROM order_lines l
LEFT JOIN products p ON p.id = l.product_id
WHERE l.order_id = ANY($1::uuid[])
ORDER BY l.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.OrderLine
		var pID, pName, pDesc, pImage *string
		var pPrice *decimal.Decimal
		var pCreated *time.Time
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity,
			&pID, &pName, &pDesc, &pPrice, &pImage, &pCreated,
		); err != nil {
			return err
		}
		if pID != nil {
			l.Product = &domain.Product{
				ID:          *pID,
				Name:        *pName,
				Description: *pDesc,
				Price:       *pPrice,
				ImageURL:    *pImage,
				CreatedAt:   *pCreated,
			}
		}
		if o, ok := byID[l.OrderID]; ok {
			o.Items = append(o.Items, l)
		}
	}
	return rows.Err()
}
