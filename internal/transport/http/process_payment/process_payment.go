package processpayment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/payment"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/httperr"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/validation"
)

type service interface {
	InitiatePayment(ctx context.Context, amount int64) (*payment.Intent, error)
	PublicKey() string
}

type processPaymentRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// ProcessPayment creates a gateway order for the checkout amount.
func ProcessPayment(w http.ResponseWriter, r *http.Request, service service) {
	var req processPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for payment", "error", err)

		return
	}

	if err := validation.Struct(&req); err != nil {
		http.Error(w, "Invalid payment amount", http.StatusBadRequest)

		return
	}

	intent, err := service.InitiatePayment(r.Context(), req.Amount)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"order":   intent,
	}); err != nil {
		slog.Error("Error writing response for payment", "error", err)
	}
}

// SendAPIKey hands the gateway public key to the storefront client.
func SendAPIKey(w http.ResponseWriter, _ *http.Request, service service) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"key":     service.PublicKey(),
	}); err != nil {
		slog.Error("Error writing response for api key", "error", err)
	}
}
