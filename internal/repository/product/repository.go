package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches catalog products.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
