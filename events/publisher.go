// Package events publishes one Kafka record per proxied process call.
// Records carry metadata only, never the generated text.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"presskit/config"
	"presskit/gateway"
	"presskit/logger"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Event is the JSON value of a published record.
type Event struct {
	RequestID      string    `json:"request_id"`
	Backend        string    `json:"backend"`
	StatusCode     int       `json:"status_code"`
	OK             bool      `json:"ok"`
	DecodeFallback bool      `json:"decode_fallback"`
	Error          string    `json:"error,omitempty"`
	DurationMS     int64     `json:"duration_ms"`
	At             time.Time `json:"at"`
}

// Publisher implements gateway.Observer on top of a sarama SyncProducer.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	backend  string
	log      *zap.SugaredLogger
}

// NewPublisher connects a synchronous producer to the configured brokers.
func NewPublisher(cfg config.KafkaConfig, backend string, log *zap.SugaredLogger) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Timeout = config.ObserverTimeout

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	topic := cfg.Topic
	if topic == "" {
		topic = config.DefaultKafkaTopic
	}
	return newPublisher(producer, topic, backend, log), nil
}

func newPublisher(producer sarama.SyncProducer, topic, backend string, log *zap.SugaredLogger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{producer: producer, topic: topic, backend: backend, log: log}
}

// Observe publishes o keyed by its request id. Failures are logged only.
func (p *Publisher) Observe(_ context.Context, o gateway.Outcome) {
	ev := Event{
		RequestID:      o.RequestID,
		Backend:        p.backend,
		StatusCode:     o.StatusCode,
		OK:             o.OK,
		DecodeFallback: o.DecodeFallback,
		DurationMS:     o.Duration.Milliseconds(),
		At:             time.Now().UTC(),
	}
	if o.Err != nil {
		ev.Error = o.Err.Error()
	}

	value, err := json.Marshal(ev)
	if err != nil {
		p.log.Warnw("Failed to encode run event", "request_id", o.RequestID, "error", err)
		return
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(o.RequestID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		p.log.Warnw("❌ Failed to publish run event", "request_id", o.RequestID, "topic", p.topic, "error", err)
		return
	}
	p.log.Debugw("📤 Run event published", "request_id", o.RequestID, "partition", partition, "offset", offset)
}

// Close shuts the producer down.
func (p *Publisher) Close() error {
	p.log.Info("Closing Kafka producer...")
	return p.producer.Close()
}
