package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Dip-ankar/Eccomerce/internal/dal/gateway"
	"github.com/Dip-ankar/Eccomerce/internal/dal/postgres"
	"github.com/Dip-ankar/Eccomerce/internal/dal/rabbitmq"
	outboxrepo "github.com/Dip-ankar/Eccomerce/internal/dal/repositories/outbox/postgres"
	paymentrepo "github.com/Dip-ankar/Eccomerce/internal/dal/repositories/payment/postgres"
	"github.com/Dip-ankar/Eccomerce/internal/otel"
	"github.com/Dip-ankar/Eccomerce/internal/service/services/ordersvc"
	"github.com/Dip-ankar/Eccomerce/internal/service/services/paymentsvc"
	httptransport "github.com/Dip-ankar/Eccomerce/internal/transport/http"
	outboxworker "github.com/Dip-ankar/Eccomerce/internal/worker/outbox"
	"github.com/Dip-ankar/Eccomerce/pkg/metrics"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	paymentSvc     *paymentsvc.PaymentService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()
	gatewayClient := gateway.NewClient()

	if _, err := rabbitMqClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    viper.GetString("rabbitmq.order_events.queue"),
		Durable: true,
	}); err != nil {
		panic(err)
	}

	paymentSvc := paymentsvc.MustNewPaymentService(
		paymentsvc.WithGatewayClient(gatewayClient),
		paymentsvc.WithPaymentRepository(paymentrepo.NewRepository(postgresClient.Pool())),
		paymentsvc.WithSecret(os.Getenv("GATEWAY_API_SECRET")),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithPaymentVerifier(paymentSvc),
	)

	serverMetrics := metrics.NewServerMetrics("order")

	transport := httptransport.NewHTTPTransport(orderSvc, paymentSvc, serverMetrics)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(
		outboxrepo.NewRepository(postgresClient.Pool()),
		rabbitMqClient,
	)

	return &App{
		orderSvc:       orderSvc,
		paymentSvc:     paymentSvc,
		transport:      transport,
		outboxWorker:   outboxWorker,
		postgresClient: postgresClient,
		rabbitMqClient: rabbitMqClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	group, _ := errgroup.WithContext(workerCtx)

	group.Go(func() error {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(workerCtx)

		return nil
	})

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.outboxWorker.Stop()
	if err := group.Wait(); err != nil {
		slog.Error("Background worker error", "error", err)
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
