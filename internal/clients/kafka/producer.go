package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"utm-som/internal/observability"
	"utm-som/internal/utm"

	"github.com/segmentio/kafka-go"
)

// EventLinkGenerated is the event_type header of every published record.
const EventLinkGenerated = "link.generated"

// Producer publishes generated link records to Kafka
type Producer struct {
	writer *kafka.Writer
	logger *observability.Logger
}

// ProducerConfig contains configuration for Kafka producer
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a new Kafka producer
func NewProducer(config ProducerConfig, logger *observability.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		Async:        false,
		Compression:  kafka.Snappy,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

func (p *Producer) Name() string { return "kafka" }

// recordMessage keys messages by campaign tag so every link of one city lands
// on the same partition.
func recordMessage(record utm.Record) (kafka.Message, error) {
	value, err := json.Marshal(record)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal record: %w", err)
	}
	return kafka.Message{
		Key:   []byte(record.Campaign),
		Value: value,
		Time:  record.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventLinkGenerated)},
			{Key: "usuario", Value: []byte(record.User)},
		},
	}, nil
}

// Append publishes one record.
func (p *Producer) Append(ctx context.Context, record utm.Record) error {
	msg, err := recordMessage(record)
	if err != nil {
		p.logger.Error(ctx, "failed to build kafka message", err)
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to write message to kafka", err)
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.logger.Debug(ctx, fmt.Sprintf("published %s to kafka", EventLinkGenerated))
	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
