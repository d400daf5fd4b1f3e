package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/wildfire-dashboard/internal/config"
	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// Writer publishes snapshot notices to the notice topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured notice topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaNoticeTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish announces one snapshot. Notices for the same date share a key and
// so a partition, keeping them ordered.
func (w *Writer) Publish(ctx context.Context, notice domain.SnapshotNotice) error {
	msg, err := serializeToMessage(notice)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notice %s: %w", notice.Date, err)
	}
	w.logger.Info("snapshot notice published", "date", notice.Date.String(), "documents", len(notice.Documents))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SnapshotNotice into a Kafka message.
func serializeToMessage(notice domain.SnapshotNotice) (kafkago.Message, error) {
	data, err := json.Marshal(notice)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot notice: %w", err)
	}
	headers := []kafkago.Header{{Key: "date", Value: []byte(notice.Date)}}
	if !notice.PublishedAt.IsZero() {
		headers = append(headers, kafkago.Header{Key: "published_at", Value: []byte(notice.PublishedAt.Format(time.RFC3339))})
	}
	return kafkago.Message{
		Key:     []byte(notice.Date),
		Value:   data,
		Headers: headers,
	}, nil
}
