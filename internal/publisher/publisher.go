// Package publisher emits the downstream action decided for a document so billing,
// CRM and compliance consumers can pick it up.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/internal/metrics"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

type ActionPublisher interface {
	Publish(ctx context.Context, event documentModel.ActionEvent) error
	Close() error
}

// New returns a Kafka publisher when brokers are configured and a no-op one otherwise.
func New(settings config.Settings) (ActionPublisher, error) {
	if len(settings.KafkaBrokers) == 0 {
		logger_i.NewLogger("Publisher").Info("No kafka brokers configured, action events disabled")
		return NoopPublisher{}, nil
	}
	return NewKafkaPublisher(settings.KafkaBrokers, settings.KafkaActionTopic)
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger_i.Logger
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = config.KafkaClientID
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = config.KafkaPublishTimeout

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewWithProducer(producer, topic), nil
}

func NewWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger_i.NewLogger("KafkaPublisher"),
	}
}

// Publish sends one event keyed by document id, so every event for a document lands on
// the same partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, event documentModel.ActionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode action event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.DocumentID),
		Value: sarama.ByteEncoder(payload),
	}
	if trace := logger_i.TraceID(ctx); trace != "" {
		msg.Headers = []sarama.RecordHeader{{Key: []byte(config.TRACE_ID_KEY), Value: []byte(trace)}}
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		metrics.CaptureActionPublish("error")
		return fmt.Errorf("publish action: %w", err)
	}
	metrics.CaptureActionPublish("ok")
	p.logger.WithTrace(ctx).Debug("Published action", "docId", event.DocumentID, "action", event.Action,
		"partition", partition, "offset", offset)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, documentModel.ActionEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
