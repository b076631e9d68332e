// Package events forwards cart and order lifecycle events to the message
// broker for downstream consumers (inventory, notifications, analytics).
package events

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"dessertshop/internal/cart"
	"dessertshop/internal/models"
)

// Broker is the slice of the RabbitMQ client the publisher needs.
type Broker interface {
	Publish(routingKey string, body []byte) error
}

// Publisher publishes shop events as JSON. A nil broker disables
// publishing entirely; a failed publish is logged and never fails the
// operation that produced the event.
type Publisher struct {
	broker Broker
	logger zerolog.Logger
}

// NewPublisher creates a Publisher. broker may be nil.
func NewPublisher(broker Broker, logger zerolog.Logger) *Publisher {
	return &Publisher{
		broker: broker,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// BindCart subscribes the publisher to the cart so every cart event is
// mirrored to the broker. Returns the unsubscribe function.
func (p *Publisher) BindCart(c *cart.Cart) func() {
	return c.Subscribe(func(event models.CartEvent) {
		routingKey := "cart." + strings.ToLower(string(event.Type))
		p.publish(routingKey, event)
	})
}

// PublishOrderEvent publishes an order lifecycle event, e.g.
// "order.created" or "order.confirmed".
func (p *Publisher) PublishOrderEvent(action string, order models.Order) {
	p.publish("order."+action, map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
		"total":    order.Details.Total,
		"currency": order.Details.Currency,
	})
}

func (p *Publisher) publish(routingKey string, payload interface{}) {
	if p.broker == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error().Err(err).Str("routing_key", routingKey).Msg("failed to marshal event")
		return
	}

	if err := p.broker.Publish(routingKey, body); err != nil {
		p.logger.Warn().Err(err).Str("routing_key", routingKey).Msg("failed to publish event")
		return
	}
	p.logger.Debug().Str("routing_key", routingKey).Msg("event published")
}
