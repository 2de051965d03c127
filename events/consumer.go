package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"presskit/config"
	"presskit/logger"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Handler receives every decoded run event. Returning an error ends the
// claim before the record is marked, so the group resumes from it.
type Handler func(ctx context.Context, ev Event) error

// Consumer tails the run event topic through a consumer group.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler Handler
	topic   string
	groupID string
	log     *zap.SugaredLogger
}

// NewConsumer joins cfg.GroupID on cfg.Brokers. New groups start from the
// newest offset, so only events published after joining are seen.
func NewConsumer(cfg config.KafkaConfig, handler Handler, log *zap.SugaredLogger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer group: %w", err)
	}
	return newConsumer(group, cfg.Topic, cfg.GroupID, handler, log), nil
}

func newConsumer(group sarama.ConsumerGroup, topic, groupID string, handler Handler, log *zap.SugaredLogger) *Consumer {
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{group: group, handler: handler, topic: topic, groupID: groupID, log: log}
}

// Run consumes until ctx is cancelled or the group is closed.
func (c *Consumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.log.Warnw("❌ Kafka consumer error", "error", err)
		}
	}()

	h := &groupHandler{handler: c.handler, log: c.log}
	c.log.Infow("✅ Kafka consumer started", "group", c.groupID, "topic", c.topic)

	for {
		err := c.group.Consume(ctx, []string{c.topic}, h)
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			return nil
		case err != nil:
			return fmt.Errorf("kafka consume failed: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	c.log.Info("Closing Kafka consumer...")
	return c.group.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler
type groupHandler struct {
	handler Handler
	log     *zap.SugaredLogger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim decodes each record and hands it to the handler. Records
// that are not valid events are marked and skipped. Offsets commit as a
// position, so a handler failure returns instead of marking later records.
func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			var ev Event
			if err := json.Unmarshal(message.Value, &ev); err != nil {
				h.log.Warnw("Skipping undecodable run event", "partition", message.Partition, "offset", message.Offset, "error", err)
				session.MarkMessage(message, "")
				continue
			}

			if err := h.handler(session.Context(), ev); err != nil {
				h.log.Warnw("❌ Failed to handle run event", "request_id", ev.RequestID, "offset", message.Offset, "error", err)
				return fmt.Errorf("handle run event at offset %d: %w", message.Offset, err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
