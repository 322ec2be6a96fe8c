package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"wordsrecord/internal/platform/kafka/producer"
)

// KafkaSink delivers audit events to a Kafka topic, keyed by entity ID so
// events for one record stay ordered within a partition.
type KafkaSink struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaSink(p *producer.Producer, topic string) *KafkaSink {
	return &KafkaSink{producer: p, topic: topic}
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.EntityID),
		Value: payload,
		Headers: map[string]string{
			"action": string(event.Action),
		},
	})
}

// LogSink writes audit events to the structured log. Used when no broker is
// configured (dev, CI).
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit event",
		"log_type", "audit",
		"action", event.Action,
		"entity_type", event.EntityType,
		"entity_id", event.EntityID,
		"editor_id", event.EditorID.String(),
		"request_id", event.RequestID,
	)
	return nil
}
