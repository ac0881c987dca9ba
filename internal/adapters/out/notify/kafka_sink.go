package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes notifications as JSON, keyed by order id so that events of one order stay
// in one partition and keep their order.
type KafkaSink struct {
	writer messageWriter
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return newKafkaSink(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	})
}

func newKafkaSink(writer messageWriter) *KafkaSink {
	return &KafkaSink{writer: writer}
}

func (s *KafkaSink) Deliver(ctx context.Context, n ports.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.OrderID),
		Value: data,
		Time:  n.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(n.Kind)},
		},
	})
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
