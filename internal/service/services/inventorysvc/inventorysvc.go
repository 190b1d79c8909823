package inventorysvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/orderitem"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/product"
)

// ProductStore is the slice of the product repository the ledger needs.
type ProductStore interface {
	DecrementStock(ctx context.Context, id int64, quantity int) error
	IncrementStock(ctx context.Context, id int64, quantity int) error
}

// Ledger keeps product stock consistent with order state. It holds no state
// of its own; the store passed per call is expected to be transaction-scoped
// by the caller.
type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Reserve decrements stock for one product. The store applies the stock
// check and the decrement as a single conditional write; a shortfall comes
// back as *product.InsufficientStockError and is never retried here.
func (l *Ledger) Reserve(ctx context.Context, store ProductStore, productID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}
	return store.DecrementStock(ctx, productID, quantity)
}

// Restore increments stock back, e.g. on cancellation. Not idempotent:
// callers invoke it exactly once per restored reservation.
func (l *Ledger) Restore(ctx context.Context, store ProductStore, productID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("restore quantity must be positive, got %d", quantity)
	}
	return store.IncrementStock(ctx, productID, quantity)
}

// ReserveAll reserves stock for every item, all or nothing. On the first
// failure every decrement already applied for this batch is restored before
// the error returns, so an order's stock effect never partially applies.
func (l *Ledger) ReserveAll(ctx context.Context, store ProductStore, items []orderitem.OrderItem) error {
	applied := make([]orderitem.OrderItem, 0, len(items))

	for _, item := range items {
		if err := l.Reserve(ctx, store, item.ProductID, item.Quantity); err != nil {
			l.compensate(ctx, store, applied)

			var shortfall *product.InsufficientStockError
			if errors.As(err, &shortfall) {
				return err
			}
			return fmt.Errorf("failed to reserve stock for product %d: %w", item.ProductID, err)
		}
		applied = append(applied, item)
	}

	return nil
}

// RestoreAll returns stock for every item in the batch.
func (l *Ledger) RestoreAll(ctx context.Context, store ProductStore, items []orderitem.OrderItem) error {
	for _, item := range items {
		if err := l.Restore(ctx, store, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to restore stock for product %d: %w", item.ProductID, err)
		}
	}

	return nil
}

func (l *Ledger) compensate(ctx context.Context, store ProductStore, applied []orderitem.OrderItem) {
	for _, item := range applied {
		if err := l.Restore(ctx, store, item.ProductID, item.Quantity); err != nil {
			slog.Error("Failed to compensate stock reservation",
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", err,
			)
		}
	}
}
