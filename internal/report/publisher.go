package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/twmb/franz-go/pkg/kgo"

	"swiftflow/internal/swift"
)

// Producer captures the subset of Kafka producer behaviour the verdict
// publisher requires.
type Producer interface {
	ProduceSync(ctx context.Context, topic string, key, value []byte) error
}

// KafkaProducer wraps a franz-go client behind the Producer contract.
type KafkaProducer struct {
	client *kgo.Client
}

// NewKafkaProducer connects to the given brokers.
func NewKafkaProducer(brokers []string) (*KafkaProducer, error) {
	client, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	if err != nil {
		return nil, fmt.Errorf("report: create kafka client: %w", err)
	}
	return &KafkaProducer{client: client}, nil
}

// ProduceSync writes one record and blocks until it is acknowledged.
func (p *KafkaProducer) ProduceSync(ctx context.Context, topic string, key, value []byte) error {
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	return p.client.ProduceSync(ctx, record).FirstErr()
}

// Close releases the underlying client.
func (p *KafkaProducer) Close() {
	p.client.Close()
}

// VerdictEvent is the wire shape of one message's fraud verdict.
type VerdictEvent struct {
	MessageID        string    `json:"message_id"`
	MessageType      string    `json:"message_type"`
	ValidationStatus string    `json:"validation_status"`
	FraudStatus      string    `json:"fraud_status"`
	FraudScore       float64   `json:"fraud_score"`
	FraudReasons     []string  `json:"fraud_reasons"`
	EmittedAt        time.Time `json:"emitted_at"`
}

// VerdictPublisher emits one event per fraud-tagged message. Constructed with
// a nil producer it is nil and every method is a safe no-op, so the pipeline
// wires it unconditionally.
type VerdictPublisher struct {
	producer Producer
	topic    string
	logger   zerolog.Logger
}

// NewVerdictPublisher constructs a publisher, or nil when prod is nil.
func NewVerdictPublisher(prod Producer, topic string, logger zerolog.Logger) *VerdictPublisher {
	if prod == nil {
		return nil
	}
	return &VerdictPublisher{
		producer: prod,
		topic:    topic,
		logger:   logger,
	}
}

// PublishBatch emits a verdict event for every message. Individual publish
// failures are logged and skipped; the batch never aborts.
func (p *VerdictPublisher) PublishBatch(ctx context.Context, messages []*swift.Message) {
	if p == nil || p.producer == nil {
		return
	}

	for _, msg := range messages {
		if err := p.publishOne(ctx, msg); err != nil {
			p.logger.Warn().Err(err).Str("message_id", msg.ID).
				Msg("verdict publish failed")
		}
	}
}

func (p *VerdictPublisher) publishOne(ctx context.Context, msg *swift.Message) error {
	event := VerdictEvent{
		MessageID:        msg.ID,
		MessageType:      msg.Type,
		ValidationStatus: string(msg.ValidationStatus),
		FraudStatus:      string(msg.FraudStatus),
		FraudScore:       msg.FraudScore,
		FraudReasons:     msg.FraudReasons,
		EmittedAt:        time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("report: marshal verdict event: %w", err)
	}
	if err := p.producer.ProduceSync(ctx, p.topic, []byte(msg.ID), payload); err != nil {
		return fmt.Errorf("report: publish verdict event: %w", err)
	}
	return nil
}
