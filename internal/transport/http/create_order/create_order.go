package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
	"github.com/Dip-ankar/Eccomerce/internal/service/services/ordersvc"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/httperr"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/middleware/authmw"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/validation"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, in ordersvc.CreateOrderInput) (*order.Order, error)
}

type orderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
	Price     int64 `json:"price" validate:"gte=0"`
}

type paymentInfoRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId" validate:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}

type shippingInfoRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Country string `json:"country" validate:"required"`
	PinCode string `json:"pinCode" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

type createOrderRequest struct {
	ShippingInfo shippingInfoRequest `json:"shippingInfo" validate:"required"`
	OrderItems   []orderItemRequest  `json:"orderItems" validate:"required,min=1,dive"`
	PaymentInfo  paymentInfoRequest  `json:"paymentInfo" validate:"required"`
}

func (req *createOrderRequest) toInput(actor principal.Principal) ordersvc.CreateOrderInput {
	items := make([]ordersvc.CreateOrderItemInput, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, ordersvc.CreateOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return ordersvc.CreateOrderInput{
		UserID: actor.UserID,
		Items:  items,
		ShippingInfo: order.ShippingInfo{
			Address: req.ShippingInfo.Address,
			City:    req.ShippingInfo.City,
			State:   req.ShippingInfo.State,
			Country: req.ShippingInfo.Country,
			PinCode: req.ShippingInfo.PinCode,
			Phone:   req.ShippingInfo.Phone,
		},
		Payment: ordersvc.PaymentProof{
			GatewayOrderID:   req.PaymentInfo.GatewayOrderID,
			GatewayPaymentID: req.PaymentInfo.GatewayPaymentID,
			Signature:        req.PaymentInfo.Signature,
		},
	}
}

// CreateOrder handles the order creation request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	actor, ok := authmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "Please login to access this resource", http.StatusUnauthorized)

		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for order creation", "error", err)

		return
	}

	if err := validation.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := service.Create(r.Context(), req.toInput(actor))
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Order created successfully",
		"order":   created,
	}); err != nil {
		slog.Error("Error writing response for order creation", "error", err)
	}
}
