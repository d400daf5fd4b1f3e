package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawNotice is an unprocessed message from the snapshot notice topic.
type RawNotice struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// SnapshotNotice announces that the documents of a daily snapshot were
// published or replaced. Documents are relative to the snapshot directory;
// an empty list means the whole snapshot.
type SnapshotNotice struct {
	Date        DateKey   `json:"date"`
	Documents   []string  `json:"documents,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

// DecodeNotice decodes and validates a snapshot notice.
func DecodeNotice(data []byte) (SnapshotNotice, error) {
	var n SnapshotNotice
	if err := json.Unmarshal(data, &n); err != nil {
		return SnapshotNotice{}, fmt.Errorf("%w: snapshot notice: %v", ErrMalformed, err)
	}
	if _, err := ParseDateKey(string(n.Date)); err != nil {
		return SnapshotNotice{}, fmt.Errorf("%w: snapshot notice: %v", ErrMalformed, err)
	}
	return n, nil
}

// Paths returns the data-root prefixes the notice touches.
func (n SnapshotNotice) Paths() []string {
	snap := Snapshot{Date: n.Date}
	if len(n.Documents) == 0 {
		return []string{snap.Dir()}
	}
	out := make([]string, len(n.Documents))
	for i, doc := range n.Documents {
		out[i] = snap.Dir() + doc
	}
	return out
}
