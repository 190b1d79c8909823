package cancelorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/httperr"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/middleware/authmw"
)

type service interface {
	Cancel(ctx context.Context, actor principal.Principal, orderID int64) (*order.Order, error)
}

// CancelOrder handles the owner's cancellation request.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
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

	o, err := service.Cancel(r.Context(), actor, id)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   o,
	}); err != nil {
		slog.Error("Error writing response for order cancellation", "error", err)
	}
}
