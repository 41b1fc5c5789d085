package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values as they appear on the wire and in the store.
const (
	StatusOpenOrder = "Open Order"
	StatusOrdered   = "Ordered"
)

// Order is a ledger entry: either a per-user draft ("Open Order") or a
// finalized purchase ("Ordered"). A user has at most one draft at a time.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	Items     []OrderLine     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OrderLine references a product and snapshots its name and unit price at
// the time the order was written, so history survives catalog deletions.
type OrderLine struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"-"`
	ProductID   *string         `json:"productId,omitempty"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	// Product carries full live details when the catalog row still exists.
	Product *Product `json:"product,omitempty"`
}

// CartItem is the client-held cart entry submitted to save-cart and
// complete-order. It is never persisted standalone.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
