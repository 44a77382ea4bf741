// Package kafka publishes order change notifications.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"laundry/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

var (
	_ ports.OrderEventPublisher = (*OrderPublisher)(nil)
	_ ports.OrderEventPublisher = (*LogPublisher)(nil)

	ErrPublisherClosed = errors.New("order publisher is closed")
)

const defaultWriteTimeout = 5 * time.Second

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// orderChangedMessage is the wire form of ports.OrderChanged.
type orderChangedMessage struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	Kind          string    `json:"kind"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	ActorID       string    `json:"actorId"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// OrderPublisher writes order.changed events keyed by order id, so all
// events of one order land on one partition in commit order.
type OrderPublisher struct {
	writer       messageWriter
	writeTimeout time.Duration
	logger       *slog.Logger
	closed       atomic.Bool
}

func NewOrderPublisher(brokers []string, topic string, logger *slog.Logger) (*OrderPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "order-publisher", "topic", topic)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error(fmt.Sprintf(msg, args...))
		}),
		AllowAutoTopicCreation: true,
	}

	return newOrderPublisher(writer, defaultWriteTimeout, logger), nil
}

func newOrderPublisher(writer messageWriter, writeTimeout time.Duration, logger *slog.Logger) *OrderPublisher {
	return &OrderPublisher{writer: writer, writeTimeout: writeTimeout, logger: logger}
}

// Publish writes events synchronously. A failure is logged and returned;
// the caller's change is already committed and stands.
func (p *OrderPublisher) Publish(ctx context.Context, events ...ports.OrderChanged) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(toMessage(e))
		if err != nil {
			return fmt.Errorf("marshal order event: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:     []byte(e.OrderID.String()),
			Value:   value,
			Headers: []kafka.Header{{Key: "kind", Value: []byte(e.Kind)}},
			Time:    e.OccurredAt,
		})
	}

	// Delivery is not bound to the request's cancellation.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish order events", "count", len(msgs), "error", err)
		return fmt.Errorf("publish order events: %w", err)
	}
	return nil
}

func (p *OrderPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func toMessage(e ports.OrderChanged) orderChangedMessage {
	return orderChangedMessage{
		OrderID:       e.OrderID.String(),
		UserID:        e.UserID.String(),
		Kind:          e.Kind,
		Status:        e.Status,
		PaymentStatus: e.PaymentStatus,
		ActorID:       e.ActorID.String(),
		OccurredAt:    e.OccurredAt.UTC(),
	}
}

// LogPublisher only logs events. It stands in when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "order-publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...ports.OrderChanged) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "order changed",
			"order_id", e.OrderID.String(),
			"kind", e.Kind,
			"status", e.Status,
			"payment_status", e.PaymentStatus,
			"actor_id", e.ActorID.String(),
		)
	}
	return nil
}
