package datasource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// --- mock for cache tests ---

type countingSource struct {
	calls map[string]int
	docs  map[string][]byte
}

func newCountingSource(docs map[string][]byte) *countingSource {
	return &countingSource{calls: make(map[string]int), docs: docs}
}

func (m *countingSource) Fetch(_ context.Context, path string) ([]byte, error) {
	m.calls[path]++
	data, ok := m.docs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// --- CachedSource tests ---

func TestCachedSource_CacheHit(t *testing.T) {
	inner := newCountingSource(map[string][]byte{"20250728/daily_summary.json": []byte(`{}`)})
	cached := NewCachedSource(inner, 10, observability.NewMetricsForTesting())

	d1, err := cached.Fetch(context.Background(), "20250728/daily_summary.json")
	require.NoError(t, err)
	d2, err := cached.Fetch(context.Background(), "20250728/daily_summary.json")
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Equal(t, 1, inner.calls["20250728/daily_summary.json"], "should only call inner once")
}

func TestCachedSource_ErrorsNotCached(t *testing.T) {
	inner := newCountingSource(map[string][]byte{})
	cached := NewCachedSource(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.Fetch(context.Background(), "missing.json")
	require.ErrorIs(t, err, domain.ErrNotFound)

	inner.docs["missing.json"] = []byte(`[]`)
	data, err := cached.Fetch(context.Background(), "missing.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
	assert.Equal(t, 2, inner.calls["missing.json"])
}

func TestCachedSource_InvalidatePrefix(t *testing.T) {
	inner := newCountingSource(map[string][]byte{
		"20250727/a.json":         []byte("a"),
		"20250728/a.json":         []byte("b"),
		"20250728/regions/x.json": []byte("c"),
	})
	cached := NewCachedSource(inner, 10, observability.NewMetricsForTesting())
	for path := range inner.docs {
		_, err := cached.Fetch(context.Background(), path)
		require.NoError(t, err)
	}
	require.Equal(t, 3, cached.Len())

	assert.Equal(t, 2, cached.Invalidate("20250728/"))
	assert.Equal(t, 1, cached.Len())

	_, err := cached.Fetch(context.Background(), "20250728/a.json")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls["20250728/a.json"])

	assert.Equal(t, 2, cached.Purge())
	assert.Zero(t, cached.Len())
}

func TestCachedSource_ZeroSizeDisablesCaching(t *testing.T) {
	inner := newCountingSource(map[string][]byte{"a": []byte("a")})
	cached := NewCachedSource(inner, 0, observability.NewMetricsForTesting())

	_, _ = cached.Fetch(context.Background(), "a")
	_, _ = cached.Fetch(context.Background(), "a")
	assert.Equal(t, 2, inner.calls["a"])
	assert.Zero(t, cached.Len())
}

func TestCachedSource_PassesThroughContextErrors(t *testing.T) {
	cached := NewCachedSource(NewDirSource(t.TempDir(), observability.NewMetricsForTesting()), 10, observability.NewMetricsForTesting())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cached.Fetch(ctx, "a.json")
	assert.True(t, errors.Is(err, context.Canceled))
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A"), result)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))
	c.put("c", []byte("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, []byte("B"), result)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, []byte("C"), result)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	// Access "a" to promote it
	c.get("a")

	// Insert "c", which evicts "b" (LRU) rather than "a"
	c.put("c", []byte("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A1"))
	c.put("a", []byte("A2"))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A2"), result)
}

func TestLRUCache_RemovePrefixKeepsListConsistent(t *testing.T) {
	c := newLRUCache(3)
	c.put("x/1", []byte("1"))
	c.put("y/2", []byte("2"))
	c.put("x/3", []byte("3"))

	assert.Equal(t, 2, c.removePrefix("x/"))
	assert.Equal(t, 1, c.len())

	c.put("z/4", []byte("4"))
	c.put("z/5", []byte("5"))
	c.put("z/6", []byte("6")) // evicts "y/2"

	_, ok := c.get("y/2")
	assert.False(t, ok)
	assert.Equal(t, 3, c.len())
}
