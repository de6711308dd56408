package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes events to one topic. Messages are keyed by lease so
// a tenant's events stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
			WriteTimeout: 2 * time.Second,
			MaxAttempts:  3,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event TransactionPosted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := event.LeaseID
	if key == "" {
		key = event.TransactionID
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// New returns a Kafka publisher when brokers are configured, Nop otherwise.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafkaPublisher(brokers, topic)
}
