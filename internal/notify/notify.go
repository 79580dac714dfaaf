package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jask/storefront/internal/database/repository"
)

// OrderMessage is the queue payload for a placed order.
type OrderMessage struct {
	ID       string      `json:"id"`
	Payment  string      `json:"payment"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Address  string      `json:"address"`
	Total    json.Number `json:"total"`
	Items    []string    `json:"items"`
	PlacedAt time.Time   `json:"placed_at"`
}

// NewOrderMessage converts a stored order.
func NewOrderMessage(o repository.Order, now time.Time) OrderMessage {
	placed := o.CreatedAt
	if placed.IsZero() {
		placed = now
	}
	return OrderMessage{
		ID:       o.ID,
		Payment:  string(o.Customer.Payment),
		Email:    o.Customer.Email,
		Phone:    o.Customer.Phone,
		Address:  o.Customer.Address,
		Total:    json.Number(o.Total.String()),
		Items:    o.Items,
		PlacedAt: placed.UTC(),
	}
}

// channel is the part of *amqp.Channel the notifier uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQP publishes placed orders to a durable queue on the default exchange.
type AMQP struct {
	conn   *amqp.Connection
	ch     channel
	queue  string
	logger *slog.Logger
}

// Dial connects, opens a channel and declares queue.
func Dial(url, queue string, logger *slog.Logger) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	n := newAMQP(ch, q.Name, logger)
	n.conn = conn
	return n, nil
}

func newAMQP(ch channel, queue string, logger *slog.Logger) *AMQP {
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQP{ch: ch, queue: queue, logger: logger}
}

// OrderPlaced publishes o as a persistent JSON message.
func (n *AMQP) OrderPlaced(ctx context.Context, o repository.Order) error {
	body, err := json.Marshal(NewOrderMessage(o, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}
	err = n.ch.PublishWithContext(ctx,
		"",
		n.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    o.ID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish order %s: %w", o.ID, err)
	}
	n.logger.Debug("order published", "id", o.ID, "queue", n.queue)
	return nil
}

func (n *AMQP) Close() error {
	err := n.ch.Close()
	if n.conn != nil {
		if cerr := n.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
