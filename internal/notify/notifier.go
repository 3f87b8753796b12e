// Package notify fans booking lifecycle events out to downstream consumers
// (office notifications, CRM sync). Delivery is best effort: a notification
// failure never fails the customer-facing operation that produced it.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/kafka"
)

// Topic carries every event this service emits.
const Topic = "booking.events"

// Event types published to the booking topic.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventLeadReceived     = "lead.received"
)

const eventSource = "booking-backend"

// Notifier publishes domain events. Implementations swallow transport errors
// after logging them.
type Notifier interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

// KafkaNotifier publishes CloudEvents to the booking topic.
type KafkaNotifier struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewKafkaNotifier creates a KafkaNotifier on top of a shared producer.
func NewKafkaNotifier(producer *kafka.Producer, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, logger: logger}
}

// Publish wraps the payload in a CloudEvent and writes it to Kafka. Errors
// are logged and dropped.
func (n *KafkaNotifier) Publish(ctx context.Context, eventType string, payload interface{}) {
	event, err := kafka.NewCloudEvent(eventSource, eventType, payload)
	if err != nil {
		n.logger.Error("failed to build event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := n.producer.PublishEvent(ctx, Topic, event); err != nil {
		n.logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

// NoopNotifier discards all events. Used when Kafka is not configured.
type NoopNotifier struct{}

// Publish does nothing.
func (NoopNotifier) Publish(ctx context.Context, eventType string, payload interface{}) {}
