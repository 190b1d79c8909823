package updatestatus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/httperr"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/middleware/authmw"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/validation"
)

type service interface {
	UpdateStatus(ctx context.Context, actor principal.Principal, orderID int64, next order.Status) (*order.Order, error)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Shipped Delivered"`
}

// UpdateStatus handles the admin status transition request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	actor, ok := authmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "Please login to access this resource", http.StatusUnauthorized)

		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)

		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for status update", "error", err)

		return
	}

	if err := validation.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	o, err := service.UpdateStatus(r.Context(), actor, id, order.Status(req.Status))
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": fmt.Sprintf("Order status updated to %s", o.Status),
		"order":   o,
	}); err != nil {
		slog.Error("Error writing response for status update", "error", err)
	}
}
