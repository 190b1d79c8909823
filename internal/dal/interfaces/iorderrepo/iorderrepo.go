package iorderrepo

import (
	"context"
	"time"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
)

// StatusPatch carries the timestamp stamped alongside a status transition.
type StatusPatch struct {
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Repository is the persistence port for orders. UpdateStatus is conditional
// on the previous status so concurrent transitions on the same order
// serialize at the row.
type Repository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	FindByID(ctx context.Context, id int64) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id int64, from, to order.Status, patch StatusPatch) error
	Delete(ctx context.Context, id int64) error
}
