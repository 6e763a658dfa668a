package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventProducer streams order events to downstream consumers (reporting,
// fulfilment). Optional: nil producer means the transport is disabled.
type EventProducer interface {
	Emit(ctx context.Context, event string, payload any) error
	Close() error
}

type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *KafkaProducer) Emit(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event),
		Value: body,
	})
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
