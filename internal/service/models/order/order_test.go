package order

import (
	"testing"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/orderitem"
)

func TestComputePrices(t *testing.T) {
	tests := []struct {
		name          string
		items         []orderitem.OrderItem
		itemPrice     int64
		taxPrice      int64
		shippingPrice int64
		totalPrice    int64
	}{
		{
			// 500 INR x2 = 1000 INR: not strictly above the threshold,
			// so flat shipping still applies.
			name:          "at threshold pays shipping",
			items:         []orderitem.OrderItem{{Price: 500_00, Quantity: 2}},
			itemPrice:     1000_00,
			taxPrice:      180_00,
			shippingPrice: 50_00,
			totalPrice:    1230_00,
		},
		{
			name:          "above threshold ships free",
			items:         []orderitem.OrderItem{{Price: 600_00, Quantity: 2}},
			itemPrice:     1200_00,
			taxPrice:      216_00,
			shippingPrice: 0,
			totalPrice:    1416_00,
		},
		{
			name: "multiple lines",
			items: []orderitem.OrderItem{
				{Price: 100_00, Quantity: 3},
				{Price: 250_00, Quantity: 1},
			},
			itemPrice:     550_00,
			taxPrice:      99_00,
			shippingPrice: 50_00,
			totalPrice:    699_00,
		},
		{
			name:          "tax rounds half up",
			items:         []orderitem.OrderItem{{Price: 3, Quantity: 1}},
			itemPrice:     3,
			taxPrice:      1,
			shippingPrice: 50_00,
			totalPrice:    50_04,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{OrderItems: tt.items}
			o.ComputePrices()

			if o.ItemPrice != tt.itemPrice {
				t.Errorf("itemPrice = %d, want %d", o.ItemPrice, tt.itemPrice)
			}
			if o.TaxPrice != tt.taxPrice {
				t.Errorf("taxPrice = %d, want %d", o.TaxPrice, tt.taxPrice)
			}
			if o.ShippingPrice != tt.shippingPrice {
				t.Errorf("shippingPrice = %d, want %d", o.ShippingPrice, tt.shippingPrice)
			}
			if o.TotalPrice != tt.totalPrice {
				t.Errorf("totalPrice = %d, want %d", o.TotalPrice, tt.totalPrice)
			}
			if o.TotalPrice != o.ItemPrice+o.TaxPrice+o.ShippingPrice {
				t.Errorf("totalPrice %d does not equal the sum of its parts", o.TotalPrice)
			}
		})
	}
}

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusDelivered, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, true},
		{StatusShipped, StatusShipped, false},
		{StatusShipped, StatusProcessing, false},
		{StatusDelivered, StatusShipped, false},
		{StatusDelivered, StatusDelivered, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusShipped, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusProcessing, StatusShipped} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("Processing"); err != nil {
		t.Fatalf("ParseStatus(Processing) returned error: %v", err)
	}
	if _, err := ParseStatus("shipped"); err == nil {
		t.Fatal("ParseStatus should reject unknown casing")
	}
}
