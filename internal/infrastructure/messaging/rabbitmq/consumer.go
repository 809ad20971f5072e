package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/shopsignal/engagement/internal/domain"
)

const (
	routingKeyOrderCreated = "order.created"
	maxBodyBytes           = 1024 * 1024
)

// OrderHandler absorbs a confirmed order event.
type OrderHandler interface {
	OrderCreated(ctx context.Context, userID, productID string) (*domain.ActivityRecord, error)
}

// OrderEvent is the wire payload published by the storefront on checkout.
type OrderEvent struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

// ParseOrderEvent decodes and validates an order.created payload.
func ParseOrderEvent(body []byte) (*OrderEvent, error) {
	var ev OrderEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, domain.ErrValidation("malformed order event payload")
	}
	if ev.UserID == "" {
		return nil, domain.ErrValidation("order event missing user_id")
	}
	if ev.ProductID == "" {
		return nil, domain.ErrValidation("order event missing product_id")
	}
	return &ev, nil
}

// Consumer reads order.created events and feeds them to the handler.
type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	handler  OrderHandler
	exchange string
	queue    string
	log      zerolog.Logger
}

func NewConsumer(url, exchange, queue string, handler OrderHandler, log zerolog.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return &Consumer{
		conn:     conn,
		ch:       ch,
		handler:  handler,
		exchange: exchange,
		queue:    queue,
		log:      log.With().Str("component", "order_consumer").Logger(),
	}, nil
}

// Start declares and binds the queue, then consumes until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.ch.Qos(10, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := c.ch.ExchangeDeclare(c.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err := c.ch.QueueDeclare(
		c.queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange":    c.exchange,
			"x-dead-letter-routing-key": "order.dlq",
		},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := c.ch.QueueBind(c.queue, routingKeyOrderCreated, c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := c.ch.Consume(
		c.queue,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info().Str("queue", c.queue).Msg("order consumer started")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("order consumer shutting down")
			return nil
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	if len(delivery.Body) > maxBodyBytes {
		c.log.Error().Int("size", len(delivery.Body)).Msg("order event body too large, dropping")
		_ = delivery.Ack(false)
		return
	}

	ev, err := ParseOrderEvent(delivery.Body)
	if err != nil {
		// Poison message, requeueing cannot fix it.
		c.log.Error().Err(err).Msg("dropping unparseable order event")
		_ = delivery.Ack(false)
		return
	}

	handleCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := c.handler.OrderCreated(handleCtx, ev.UserID, ev.ProductID); err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == domain.CodeValidation {
			c.log.Error().Err(err).Str("order_id", ev.OrderID).Msg("rejecting invalid order event")
			_ = delivery.Ack(false)
			return
		}
		c.log.Error().Err(err).Str("order_id", ev.OrderID).Msg("order event handling failed, requeueing")
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
	c.log.Info().
		Str("order_id", ev.OrderID).
		Str("user_id", ev.UserID).
		Str("product_id", ev.ProductID).
		Msg("order event processed")
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
