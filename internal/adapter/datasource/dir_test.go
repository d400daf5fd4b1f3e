package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDirSource_Fetch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "20250728/regions/Region_3_20250728.json", `[]`)

	s := NewDirSource(root, observability.NewMetricsForTesting())
	data, err := s.Fetch(context.Background(), "20250728/regions/Region_3_20250728.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, root, s.Root())
}

func TestDirSource_Fetch_NotFound(t *testing.T) {
	s := NewDirSource(t.TempDir(), observability.NewMetricsForTesting())
	_, err := s.Fetch(context.Background(), "20250728/daily_summary.json")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDirSource_Fetch_RejectsEscapes(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "data")
	require.NoError(t, os.MkdirAll(root, 0o755))
	writeFile(t, parent, "secret.txt", "x")

	s := NewDirSource(root, observability.NewMetricsForTesting())
	for _, path := range []string{"../secret.txt", "/etc/passwd", "a/../../secret.txt", ""} {
		_, err := s.Fetch(context.Background(), path)
		assert.ErrorIs(t, err, ErrInvalidPath, path)
	}
}
