package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/payment"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/product"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Write maps a domain error to a status code and a user-safe JSON body.
// Unrecognized errors become a generic 500 so internals never leak.
func Write(w http.ResponseWriter, err error) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("Unexpected error", "error", err)
		message = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Success: false, Message: message})
}

func classify(err error) (int, string) {
	var shortfall *product.InsufficientStockError
	switch {
	case errors.As(err, &shortfall):
		return http.StatusBadRequest, shortfall.Error()
	case errors.Is(err, order.ErrValidation), errors.Is(err, payment.ErrInvalidAmount):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, payment.ErrVerificationFailed):
		return http.StatusBadRequest, payment.ErrVerificationFailed.Error()
	case errors.Is(err, principal.ErrUnauthorized):
		return http.StatusForbidden, "not allowed to access this resource"
	case errors.Is(err, order.ErrNotFound), errors.Is(err, product.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNotDeletable),
		errors.Is(err, order.ErrStatusConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, ""
	}
}
