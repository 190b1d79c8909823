package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/payment"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
	"github.com/Dip-ankar/Eccomerce/internal/service/services/ordersvc"
	cancelorder "github.com/Dip-ankar/Eccomerce/internal/transport/http/cancel_order"
	createorder "github.com/Dip-ankar/Eccomerce/internal/transport/http/create_order"
	deleteorder "github.com/Dip-ankar/Eccomerce/internal/transport/http/delete_order"
	getorder "github.com/Dip-ankar/Eccomerce/internal/transport/http/get_order"
	listorders "github.com/Dip-ankar/Eccomerce/internal/transport/http/list_orders"
	"github.com/Dip-ankar/Eccomerce/internal/transport/http/middleware/authmw"
	processpayment "github.com/Dip-ankar/Eccomerce/internal/transport/http/process_payment"
	updatestatus "github.com/Dip-ankar/Eccomerce/internal/transport/http/update_status"
	"github.com/Dip-ankar/Eccomerce/pkg/http/middleware/trace"
	"github.com/Dip-ankar/Eccomerce/pkg/logger"
	"github.com/Dip-ankar/Eccomerce/pkg/metrics"
)

type orderService interface {
	Create(ctx context.Context, in ordersvc.CreateOrderInput) (*order.Order, error)
	Get(ctx context.Context, actor principal.Principal, orderID int64) (*order.Order, error)
	ListMine(ctx context.Context, actor principal.Principal) ([]order.Order, error)
	ListAll(ctx context.Context, actor principal.Principal, filter *order.QueryOrdersModel) ([]order.Order, int64, error)
	UpdateStatus(ctx context.Context, actor principal.Principal, orderID int64, next order.Status) (*order.Order, error)
	Cancel(ctx context.Context, actor principal.Principal, orderID int64) (*order.Order, error)
	Delete(ctx context.Context, actor principal.Principal, orderID int64) error
}

type paymentService interface {
	InitiatePayment(ctx context.Context, amount int64) (*payment.Intent, error)
	PublicKey() string
}

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	orderSvc   orderService
	paymentSvc paymentService
}

func NewHTTPTransport(orderSvc orderService, paymentSvc paymentService, m *metrics.ServerMetrics) *HTTPTransport {
	router := newRouter(m)
	server := newServer(router)
	return &HTTPTransport{
		server:     server,
		router:     router,
		orderSvc:   orderSvc,
		paymentSvc: paymentSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	authenticated := authmw.New(viper.GetString("auth.jwt_secret"))

	h.router.Get("/metrics", metrics.Handler().ServeHTTP)
	h.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h.router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Post("/order/new", h.createOrder)
			r.Get("/order/{id}", h.getOrder)
			r.Get("/orders/me", h.listMyOrders)
			r.Put("/order/cancel/{id}", h.cancelOrder)

			r.Post("/payment/process", h.processPayment)
			r.Get("/payment/key", h.sendAPIKey)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAdmin)

				r.Get("/admin/orders", h.listAllOrders)
				r.Put("/admin/order/{id}", h.updateStatus)
				r.Delete("/admin/order/{id}", h.deleteOrder)
			})
		})
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listMyOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListMyOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) listAllOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListAllOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.orderSvc)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) processPayment(w http.ResponseWriter, r *http.Request) {
	processpayment.ProcessPayment(w, r, h.paymentSvc)
}

func (h *HTTPTransport) sendAPIKey(w http.ResponseWriter, r *http.Request) {
	processpayment.SendAPIKey(w, r, h.paymentSvc)
}

func newRouter(m *metrics.ServerMetrics) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)
	router.Use(m.Middleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
