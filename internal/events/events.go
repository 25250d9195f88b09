// Package events publishes domain events (résumé parsed, matches generated, data cleared).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/logger"
)

// Routing keys.
const (
	ResumeParsed     = "resume.parsed"
	MatchesGenerated = "matches.generated"
	DataCleared      = "data.cleared"
)

// Event is the message body sent to subscribers.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }

// Encode builds the JSON body for an event.
func Encode(routingKey string, payload any, now time.Time) ([]byte, error) {
	body, err := json.Marshal(Event{Type: routingKey, Timestamp: now.UTC(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", routingKey, err)
	}
	return body, nil
}

// AMQPPublisher publishes to a durable topic exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	exchange string
}

// DialAMQP connects to url and declares exchange.
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, exchange: exchange}, nil
}

// Publish opens a channel per message; amqp channels are not safe for concurrent use.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := Encode(routingKey, payload, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	return ch.Publish(
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}

// Emitter publishes events and logs failures instead of returning them.
type Emitter struct {
	publisher Publisher
	logger    *zap.Logger
}

// NewEmitter wraps p. A nil p drops events.
func NewEmitter(p Publisher, l *zap.Logger) *Emitter {
	if p == nil {
		p = NopPublisher{}
	}
	return &Emitter{publisher: p, logger: logger.OrNop(l)}
}

// Emit publishes payload under routingKey.
func (e *Emitter) Emit(ctx context.Context, routingKey string, payload any) {
	if err := e.publisher.Publish(ctx, routingKey, payload); err != nil {
		e.logger.Warn("failed to publish event",
			zap.String("routing_key", routingKey), zap.Error(err))
	}
}

// Close closes the underlying publisher.
func (e *Emitter) Close() error { return e.publisher.Close() }
