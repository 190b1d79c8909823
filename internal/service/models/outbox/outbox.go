package outbox

import (
	"time"
)

// Message is an order lifecycle event waiting to be published to RabbitMQ.
// Rows are written in the same transaction as the state change they describe
// and drained by the outbox worker.
type Message struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// Event types carried in Message payloads.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
	EventOrderCancelled     = "order.cancelled"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent is the payload published for every order lifecycle change.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    int64     `json:"orderId"`
	UserID     int64     `json:"userId"`
	Status     string    `json:"status"`
	TotalPrice int64     `json:"totalPrice"`
	OccurredAt time.Time `json:"occurredAt"`
}
