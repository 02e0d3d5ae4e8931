package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const PaymentCompletedQueue = "payment.completed"

// PaymentCompletedEvent is published once a ticket's payment turns completed.
type PaymentCompletedEvent struct {
	PaymentID     string    `json:"payment_id"`
	TicketID      string    `json:"ticket_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transaction_id"`
	CompletedAt   time.Time `json:"completed_at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// NewPublisher dials RabbitMQ, or returns a no-op publisher when url is empty.
func NewPublisher(url string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		return NopPublisher{}, nil
	}
	return NewRabbitPublisher(url, log)
}

// RabbitPublisher publishes persistent JSON messages to durable queues on the default exchange.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	mu       sync.Mutex
	declared map[string]bool
	log      *zap.Logger
}

func NewRabbitPublisher(url string, log *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	return &RabbitPublisher{
		conn:     conn,
		ch:       ch,
		declared: make(map[string]bool),
		log:      log.With(zap.String("component", "publisher")),
	}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", routingKey, err)
	}

	// amqp.Channel tidak aman dipakai bersamaan
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared[routingKey] {
		if _, err := p.ch.QueueDeclare(routingKey, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", routingKey, err)
		}
		p.declared[routingKey] = true
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.Debug("Event published", zap.String("routing_key", routingKey))
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
