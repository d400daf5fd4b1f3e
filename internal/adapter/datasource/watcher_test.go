package datasource

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

type recordingInvalidator struct {
	mu       sync.Mutex
	prefixes []string
}

func (r *recordingInvalidator) Invalidate(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefix)
	return 1
}

func (r *recordingInvalidator) saw(prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.prefixes, prefix)
}

func TestWatcher_InvalidatesChangedDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "20250728/regions/Region_3_20250728.json", `[]`)

	inv := &recordingInvalidator{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := NewWatcher(root, inv, logger, observability.NewMetricsForTesting())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, root, "20250728/regions/Region_3_20250728.json", `[{}]`)
	assert.Eventually(t, func() bool {
		return inv.saw("20250728/regions/Region_3_20250728.json")
	}, 2*time.Second, 10*time.Millisecond)

	// Directories created after start are watched too.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "20250729", "regions"), 0o755))
	assert.Eventually(t, func() bool { return inv.saw("20250729") }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcher_MissingRoot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), &recordingInvalidator{}, logger, observability.NewMetricsForTesting())
	require.Error(t, err)
}
