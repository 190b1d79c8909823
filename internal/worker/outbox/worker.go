package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/ioutboxrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/rabbitmq"
	outboxmodel "github.com/Dip-ankar/Eccomerce/internal/service/models/outbox"
)

// Worker drains order lifecycle events from the outbox table to RabbitMQ.
type Worker struct {
	outboxRepo    ioutboxrepo.Repository
	rabbitClient  *rabbitmq.Client
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	stopCh        chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.Repository,
	rabbitClient *rabbitmq.Client,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	return &Worker{
		outboxRepo:    outboxRepo,
		rabbitClient:  rabbitClient,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:        make(chan struct{}),
	}
}

// Start begins processing messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processMessages retrieves and publishes pending messages from the outbox.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	for _, msg := range messages {
		if err := w.publish(msg); err != nil {
			w.scheduleRetry(ctx, msg, err)

			continue
		}

		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			slog.Error("Failed to delete published outbox message", "message_id", msg.ID, "error", err)
		}
	}
}

func (w *Worker) publish(msg outboxmodel.Message) error {
	return w.rabbitClient.Channel().Publish(
		msg.ExchangeName,
		msg.RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Payload,
		},
	)
}

// scheduleRetry backs off exponentially on the retry interval.
func (w *Worker) scheduleRetry(ctx context.Context, msg outboxmodel.Message, cause error) {
	retryCount := msg.RetryCount + 1
	backoff := time.Duration(math.Pow(2, float64(msg.RetryCount))) * w.retryInterval
	nextRetryAt := time.Now().Add(backoff)

	slog.Error("Failed to publish outbox message",
		"message_id", msg.ID,
		"retry_count", retryCount,
		"next_retry_at", nextRetryAt,
		"error", cause,
	)

	if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, retryCount, cause.Error(), nextRetryAt); err != nil {
		slog.Error("Failed to update outbox message retry state", "message_id", msg.ID, "error", err)
	}
}
