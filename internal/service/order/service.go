package order

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidCart is returned for non-positive quantities or negative prices.
	ErrInvalidCart = errors.New("invalid cart item")
)

type orderRepo interface {
	ReplaceForUser(ctx context.Context, in orderrepo.ReplaceOrderInput) (*domain.Order, error)
	ListOrderedByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAllOrdered(ctx context.Context) ([]domain.Order, error)
	DeleteAllOrdered(ctx context.Context) (int64, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Service turns a client-held cart into ledger mutations.
type Service struct {
	orders orderRepo
	users  userRepo
	logger zerolog.Logger
}

func New(orders orderRepo, users userRepo, logger zerolog.Logger) *Service {
	return &Service{
		orders: orders,
		users:  users,
		logger: logger.With().Str("service", "order").Logger(),
	}
}

// SaveOpenOrder flushes the cart into the user's draft, replacing whatever
// draft existed. Called on logout. An empty cart is valid here: it replaces
// the draft with an empty one, so an emptied cart stays empty across
// re-login instead of resurrecting the old draft.
func (s *Service) SaveOpenOrder(ctx context.Context, userID string, cart []domain.CartItem) (*domain.Order, error) {
	return s.replace(ctx, userID, cart, domain.StatusOpenOrder)
}

// CompleteOrder finalizes the cart as an Ordered record, clearing any prior
// draft in the same transaction. Checkout with no items is rejected.
func (s *Service) CompleteOrder(ctx context.Context, userID string, cart []domain.CartItem) (*domain.Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	return s.replace(ctx, userID, cart, domain.StatusOrdered)
}

func (s *Service) replace(ctx context.Context, userID string, cart []domain.CartItem, status string) (*domain.Order, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	lines := make([]orderrepo.LineInput, 0, len(cart))
	total := decimal.Zero
	for _, item := range cart {
		if item.Quantity <= 0 || item.Product.Price.IsNegative() {
			return nil, ErrInvalidCart
		}
		var productID *string
		if item.Product.ID != "" {
			id := item.Product.ID
			productID = &id
		}
		lines = append(lines, orderrepo.LineInput{
			ProductID:   productID,
			ProductName: item.Product.Name,
			UnitPrice:   item.Product.Price,
			Quantity:    item.Quantity,
		})
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	o, err := s.orders.ReplaceForUser(ctx, orderrepo.ReplaceOrderInput{
		UserID:   u.ID,
		UserName: u.Username,
		Status:   status,
		Total:    total,
		Lines:    lines,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("status", status).Msg("replace order failed")
		return nil, err
	}
	return o, nil
}

// ListUserOrders returns the user's finalized orders, newest first.
func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListOrderedByUser(ctx, userID)
}

// ListAllOrders returns every finalized order across all users.
func (s *Service) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAllOrdered(ctx)
}

// DeleteAllOrders removes every finalized order irreversibly. Drafts are
// untouched.
func (s *Service) DeleteAllOrders(ctx context.Context) (int64, error) {
	n, err := s.orders.DeleteAllOrdered(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("deleted", n).Msg("all ordered records deleted")
	return n, nil
}
