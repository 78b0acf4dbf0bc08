// Package event publishes storefront domain events to Kafka. Publishing is
// optional and strictly fire-and-forget: a nil Producer is valid and does
// nothing, and publish failures are logged, never surfaced to the request.
package event

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/Ricciar/grape-ceramics/internal/domain"
	"github.com/Ricciar/grape-ceramics/pkg/kafka"
	"github.com/Ricciar/grape-ceramics/pkg/logger"
)

const (
	source = "storefront"

	TopicOrderCreated = "storefront.order.created"
	TopicCartUpdated  = "storefront.cart.updated"

	EventTypeOrderCreated = "order.created"
	EventTypeCartUpdated  = "cart.updated"
)

// OrderCreatedData is the payload of an order.created event.
type OrderCreatedData struct {
	OrderID     int    `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
	LineCount   int    `json:"line_count"`
	ItemCount   int    `json:"item_count"`
}

// CartUpdatedData is the payload of a cart.updated event.
type CartUpdatedData struct {
	SessionID string `json:"session_id"`
	LineCount int    `json:"line_count"`
	ItemCount int    `json:"item_count"`
}

// Producer publishes storefront events. The zero value (nil) is a no-op
// producer for deployments without Kafka.
type Producer struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewProducer wraps a Kafka producer for storefront event publishing.
func NewProducer(producer *kafka.Producer, log *slog.Logger) *Producer {
	return &Producer{producer: producer, logger: log}
}

// OrderCreated publishes an order.created event for a successfully placed
// order. Failures are logged and swallowed.
func (p *Producer) OrderCreated(ctx context.Context, result domain.CheckoutResult, lineCount, itemCount int) {
	if p == nil || p.producer == nil {
		return
	}

	data := OrderCreatedData{
		OrderID:     result.OrderID,
		CheckoutURL: result.CheckoutURL,
		LineCount:   lineCount,
		ItemCount:   itemCount,
	}
	p.publish(ctx, TopicOrderCreated, EventTypeOrderCreated, strconv.Itoa(result.OrderID), "order", data)
}

// CartUpdated publishes a cart.updated event after a session cart mutation.
// Failures are logged and swallowed.
func (p *Producer) CartUpdated(ctx context.Context, sessionID string, c *domain.Cart) {
	if p == nil || p.producer == nil {
		return
	}

	data := CartUpdatedData{
		SessionID: sessionID,
		LineCount: len(c.Lines),
		ItemCount: c.ItemCount(),
	}
	p.publish(ctx, TopicCartUpdated, EventTypeCartUpdated, sessionID, "cart", data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
