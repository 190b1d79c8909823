package iorderitemrepo

import (
	"context"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/orderitem"
)

// Repository is the persistence port for order items.
type Repository interface {
	Insert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	ListByOrder(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error)
	ListByOrders(ctx context.Context, orderIDs []int64) ([]orderitem.OrderItem, error)
	SetReserved(ctx context.Context, orderID int64, productIDs []int64, reserved bool) error
	DeleteByOrder(ctx context.Context, orderID int64) error
}
