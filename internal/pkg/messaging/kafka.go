package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"
)

var ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")

// KafkaConfig lists the brokers to dial.
type KafkaConfig struct {
	Brokers []string
}

type kafkaMessage struct{ m kafka.Message }

func (k kafkaMessage) Topic() string { return k.m.Topic }
func (k kafkaMessage) Body() []byte  { return k.m.Value }

func (k kafkaMessage) Header(key string) string {
	for _, h := range k.m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Kafka keeps one writer per process and one reader per Consume call.
type Kafka struct {
	brokers []string
	writer  *kafka.Writer

	mu     sync.Mutex
	closed bool
}

// NewKafka builds a writer. Readers are created per Consume call.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: cfg.Brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if topic == "" {
		return ErrTopicRequired
	}

	km := kafka.Message{Topic: topic, Key: msg.Key, Value: msg.Body}
	for _, h := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: h.Key, Value: []byte(h.Value)})
	}

	if err := k.writer.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return nil
}

// Consume handles messages one at a time and commits an offset only after
// its handler succeeds. A failed message is logged and left uncommitted.
func (k *Kafka) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	o := newConsumeOptions(opts)
	if err := validateConsume(topic, h, o); err != nil {
		return err
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  o.group,
		Topic:    topic,
		MaxBytes: 10e6,
	})
	defer r.Close()

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("messaging: kafka fetch: %w", err)
		}

		if err := handle(ctx, DriverKafka, h, kafkaMessage{m: m}); err != nil {
			slog.WarnContext(ctx, "kafka message not committed", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "error", err)
			continue
		}

		if err := r.CommitMessages(ctx, m); err != nil {
			return fmt.Errorf("messaging: kafka commit: %w", err)
		}
	}
}

func (k *Kafka) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil
	}
	k.closed = true

	return k.writer.Close()
}
