package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/httperr"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/middleware/authmw"
)

type service interface {
	ListMine(ctx context.Context, actor principal.Principal) ([]order.Order, error)
	ListAll(ctx context.Context, actor principal.Principal, filter *order.QueryOrdersModel) ([]order.Order, int64, error)
}

type queryOrdersRequest struct {
	Ids     []int64 `schema:"ids,omitempty"`
	UserIds []int64 `schema:"userIds,omitempty"`
	Limit   int     `schema:"limit,omitempty"`
	Offset  int     `schema:"offset,omitempty"`
}

func (q *queryOrdersRequest) ToModel() *order.QueryOrdersModel {
	return &order.QueryOrdersModel{
		Ids:     q.Ids,
		UserIds: q.UserIds,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}

// ListMyOrders handles the "my orders" listing for the requesting user.
func ListMyOrders(w http.ResponseWriter, r *http.Request, service service) {
	actor, ok := authmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "Please login to access this resource", http.StatusUnauthorized)

		return
	}

	orders, err := service.ListMine(r.Context(), actor)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"orders":  orders,
	}); err != nil {
		slog.Error("Error writing response for my orders", "error", err)
	}
}

// ListAllOrders handles the admin listing with optional query filters and
// the total revenue across the returned orders.
func ListAllOrders(w http.ResponseWriter, r *http.Request, service service) {
	actor, ok := authmw.FromContext(r.Context())
	if !ok {
		http.Error(w, "Please login to access this resource", http.StatusUnauthorized)

		return
	}

	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	orders, totalAmount, err := service.ListAll(r.Context(), actor, query.ToModel())
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success":     true,
		"orders":      orders,
		"totalAmount": totalAmount,
	}); err != nil {
		slog.Error("Error writing response for all orders", "error", err)
	}
}
