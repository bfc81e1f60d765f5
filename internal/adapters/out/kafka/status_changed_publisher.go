// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"evashoes/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// EventType is the value of the "type" field of every published message.
const EventType = "order.status_changed"

// StatusChangedEvent is the JSON payload of a status change message.
type StatusChangedEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StatusChangedPublisher writes one message per accepted transition, keyed by the order
// id so the changes of one order stay ordered within a partition.
type StatusChangedPublisher struct {
	writer messageWriter
}

// NewStatusChangedPublisher connects to the comma separated brokers.
func NewStatusChangedPublisher(brokersCSV string, topic string) *StatusChangedPublisher {
	return &StatusChangedPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(ParseBrokers(brokersCSV)...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *StatusChangedPublisher) PublishStatusChanged(ctx context.Context, change order.StatusChange) error {
	payload, err := json.Marshal(StatusChangedEvent{
		Type:       EventType,
		OrderID:    change.OrderID.String(),
		From:       change.From.String(),
		To:         change.To.String(),
		OccurredAt: change.At.UTC(),
	})
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.OrderID.String()),
		Value: payload,
		Time:  change.At.UTC(),
	})
	if err != nil {
		return fmt.Errorf("publish status change of order %s: %w", change.OrderID, err)
	}
	return nil
}

func (p *StatusChangedPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every change. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, order.StatusChange) error { return nil }

func (NoopPublisher) Close() error { return nil }

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
