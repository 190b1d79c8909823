package iproductrepo

import (
	"context"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/product"
)

// Repository is the persistence port for the product stock the order flow
// touches. DecrementStock must be a single conditional update, never a
// read-then-write, so two concurrent orders cannot both pass a stock check.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*product.Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) error
	IncrementStock(ctx context.Context, id int64, quantity int) error
}
