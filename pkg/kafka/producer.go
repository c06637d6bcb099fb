package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers []string
}

// Producer publishes JSON event envelopes. Messages are keyed by the
// entity they concern, so records for one submission or class land on
// a single partition in order.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &Producer{writer: writer}, nil
}

// envelope is the wire form shared by every published event.
type envelope struct {
	EmittedAt time.Time   `json:"emitted_at"`
	Payload   interface{} `json:"payload"`
}

func encodeEvent(payload interface{}, at time.Time) ([]byte, error) {
	return json.Marshal(envelope{EmittedAt: at, Payload: payload})
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	value, err := encodeEvent(payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", topic, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
