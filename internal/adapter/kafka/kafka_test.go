package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

func TestMapMessageToRawNotice(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("20250728"),
		Value:     []byte(`{"date":"20250728"}`),
		Topic:     "fire-snapshots",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "date", Value: []byte("20250728")},
		},
	}

	raw := mapMessageToRawNotice(msg)

	assert.Equal(t, []byte("20250728"), raw.Key)
	assert.JSONEq(t, `{"date":"20250728"}`, string(raw.Value))
	assert.Equal(t, "fire-snapshots", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "20250728", raw.Headers["date"])
	assert.Nil(t, raw.Commit, "commit is attached by the reader")
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 7, 28, 13, 45, 0, 0, time.UTC)
	notice := domain.SnapshotNotice{
		Date:        "20250728",
		Documents:   []string{"fire_summary_20250728.json"},
		PublishedAt: now,
	}

	msg, err := serializeToMessage(notice)
	require.NoError(t, err)

	assert.Equal(t, []byte("20250728"), msg.Key)
	assert.Contains(t, string(msg.Value), `"date":"20250728"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "date", msg.Headers[0].Key)
	assert.Equal(t, "published_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	decoded, err := domain.DecodeNotice(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, notice.Documents, decoded.Documents)
}

func TestSerializeToMessageWithoutTimestamp(t *testing.T) {
	msg, err := serializeToMessage(domain.SnapshotNotice{Date: "20250728"})
	require.NoError(t, err)
	assert.Len(t, msg.Headers, 1)
	assert.NotContains(t, string(msg.Value), "published_at")
}
