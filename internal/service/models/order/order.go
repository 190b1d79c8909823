package order

import (
	"time"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/currency"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/orderitem"
)

// Order represents a customer order with its price snapshot.
type Order struct {
	ID            int64                 `json:"id"`
	UserID        int64                 `json:"userId"`
	ShippingInfo  ShippingInfo          `json:"shippingInfo"`
	PaymentInfo   PaymentInfo           `json:"paymentInfo"`
	ItemPrice     int64                 `json:"itemPrice"`
	TaxPrice      int64                 `json:"taxPrice"`
	ShippingPrice int64                 `json:"shippingPrice"`
	TotalPrice    int64                 `json:"totalPrice"`
	Currency      currency.Currency     `json:"currency"`
	Status        Status                `json:"orderStatus"`
	PaidAt        *time.Time            `json:"paidAt,omitempty"`
	DeliveredAt   *time.Time            `json:"deliveredAt,omitempty"`
	CancelledAt   *time.Time            `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	OrderItems    []orderitem.OrderItem `json:"orderItems"`
}

// ShippingInfo is the address snapshot captured at order creation.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
	Phone   string `json:"phone"`
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// PaymentInfo references the gateway payment applied to this order.
type PaymentInfo struct {
	GatewayOrderID   string        `json:"gatewayOrderId"`
	GatewayPaymentID string        `json:"gatewayPaymentId"`
	Status           PaymentStatus `json:"status"`
	Signature        string        `json:"-"`
}

// Prices are int64 paise. Tax is 18% of the item total, rounded half up.
// Shipping is free strictly above the threshold, flat otherwise.
const (
	taxRatePercent        = 18
	FreeShippingThreshold = 1000_00
	FlatShippingPrice     = 50_00
)

// ComputePrices fills the derived price fields from the order items.
// totalPrice always equals itemPrice + taxPrice + shippingPrice.
func (o *Order) ComputePrices() {
	var itemPrice int64
	for _, item := range o.OrderItems {
		itemPrice += item.Price * int64(item.Quantity)
	}

	o.ItemPrice = itemPrice
	o.TaxPrice = (itemPrice*taxRatePercent + 50) / 100
	if itemPrice > FreeShippingThreshold {
		o.ShippingPrice = 0
	} else {
		o.ShippingPrice = FlatShippingPrice
	}
	o.TotalPrice = o.ItemPrice + o.TaxPrice + o.ShippingPrice
}
