//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"wordsrecord/internal/audit"
	"wordsrecord/internal/platform/config"
	"wordsrecord/internal/platform/kafka/producer"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/testutil/containers"
)

func TestKafkaSink_DeliversEvent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	kc := containers.GetManager().GetKafka(t)

	const topic = "words-record.audit.sink-test"
	require.NoError(t, kc.CreateTopic(ctx, topic, 1, 1))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	prod, err := producer.New(config.Kafka{
		Brokers:         kc.Brokers,
		Acks:            "all",
		Retries:         3,
		DeliveryTimeout: 10 * time.Second,
	}, logger)
	require.NoError(t, err)
	defer prod.Close()

	sink := audit.NewKafkaSink(prod, topic)

	editorID := id.NewEditorID()
	event := audit.Event{
		Timestamp:  time.Now().UTC(),
		Action:     audit.EventFactUpserted,
		EntityType: "nationality_fact",
		EntityID:   id.NewFactID().String(),
		EditorID:   editorID,
		RequestID:  "req-sink-test",
		Detail:     map[string]string{"country_code": "IL"},
	}
	require.NoError(t, sink.Append(ctx, event))

	consumer, err := kc.NewConsumer(ctx, "audit-sink-test", topic)
	require.NoError(t, err)
	defer consumer.Close()

	record := kc.WaitForMessage(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == event.EntityID
	})
	require.NotNil(t, record, "audit event never arrived on topic")

	var got audit.Event
	require.NoError(t, json.Unmarshal(record.Value, &got))
	require.Equal(t, audit.EventFactUpserted, got.Action)
	require.Equal(t, "nationality_fact", got.EntityType)
	require.Equal(t, editorID, got.EditorID)
	require.Equal(t, "IL", got.Detail["country_code"])
}

func TestKafkaSink_PublisherEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	kc := containers.GetManager().GetKafka(t)

	const topic = "words-record.audit.publisher-test"
	require.NoError(t, kc.CreateTopic(ctx, topic, 1, 1))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	prod, err := producer.New(config.Kafka{
		Brokers:         kc.Brokers,
		Acks:            "all",
		Retries:         3,
		DeliveryTimeout: 10 * time.Second,
	}, logger)
	require.NoError(t, err)
	defer prod.Close()

	pub := audit.NewPublisher(audit.NewKafkaSink(prod, topic),
		audit.WithLogger(logger),
		audit.WithAsyncBuffer(16),
	)

	entityID := id.NewStatementID().String()
	require.NoError(t, pub.Emit(ctx, audit.Event{
		Action:     audit.EventStatementCreated,
		EntityType: "statement",
		EntityID:   entityID,
	}))
	// Close drains the async buffer through the sink.
	pub.Close()

	consumer, err := kc.NewConsumer(ctx, "audit-publisher-test", topic)
	require.NoError(t, err)
	defer consumer.Close()

	record := kc.WaitForMessage(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == entityID
	})
	require.NotNil(t, record, "audit event never arrived on topic")
}
