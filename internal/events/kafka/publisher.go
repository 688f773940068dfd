package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
)

// Publisher writes audit events to a Kafka topic as JSON. It implements the
// AuditSink port.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka-backed audit publisher.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

var _ portssvc.AuditSink = (*Publisher)(nil)

// Publish serializes the event and writes it to the topic. The event's
// entity ID is used as the message key so events for the same entity stay
// ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, event domain.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EntityID),
		Value: data,
	})
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
