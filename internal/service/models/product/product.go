package product

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("product not found")

// Product is the catalog subset the order flow needs: the current price used
// for the order snapshot and the stock counter owned by the inventory ledger.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InsufficientStockError reports an inventory shortfall for one product.
type InsufficientStockError struct {
	Name      string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s is out of stock (available: %d)", e.Name, e.Available)
}
