package orderitem

import (
	"time"
)

// OrderItem represents an item within an order. Name, Price and ImageURL are
// snapshots taken from the catalog at order creation; they never track later
// catalog changes.
type OrderItem struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	ProductID int64     `json:"productId"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"imageUrl"`
	Reserved  bool      `json:"reserved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
