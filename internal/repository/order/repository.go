package order

import (
	"context"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// LineInput is one (product, quantity) pair to write into an order. Name and
// unit price are snapshotted so the line survives catalog deletions.
type LineInput struct {
	ProductID   *string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// ReplaceOrderInput replaces whatever draft the user currently holds.
type ReplaceOrderInput struct {
	UserID   string
	UserName string
	Status   string
	Total    decimal.Decimal
	Lines    []LineInput
}

// Repository is the order ledger. ReplaceForUser must atomically remove the
// user's existing draft and insert the new order: a failure mid-way may not
// leave the user with neither row.
type Repository interface {
	ReplaceForUser(ctx context.Context, in ReplaceOrderInput) (*domain.Order, error)
	GetOpenByUser(ctx context.Context, userID string) (*domain.Order, error)
	ListOrderedByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAllOrdered(ctx context.Context) ([]domain.Order, error)
	DeleteAllOrdered(ctx context.Context) (int64, error)
}
