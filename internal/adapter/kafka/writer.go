package kafka

import (
	"context"
	"log/slog"
	"sort"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/methane-report-service/internal/config"
	"github.com/couchcryptid/methane-report-service/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes rendered documents to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchBytes:   16 << 20,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes the documents in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, events []domain.OutputEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msgs[i] = toMessage(events[i])
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Debug("documents published", "count", len(msgs))
	return nil
}

// Close flushes pending writes and closes the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage keys the message by document ID. Headers are emitted in key order.
func toMessage(event domain.OutputEvent) kafkago.Message {
	keys := make([]string, 0, len(event.Headers))
	for k := range event.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafkago.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(event.Headers[k])})
	}
	return kafkago.Message{
		Key:     event.Key,
		Value:   event.Value,
		Headers: headers,
		Time:    event.GeneratedAt,
	}
}
