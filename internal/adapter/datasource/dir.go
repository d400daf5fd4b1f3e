package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// ErrInvalidPath is returned for document paths that would leave the root.
var ErrInvalidPath = errors.New("invalid document path")

// DirSource reads snapshot documents from a local directory tree laid out
// like the HTTP origin.
type DirSource struct {
	root    string
	metrics *observability.Metrics
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string, metrics *observability.Metrics) *DirSource {
	return &DirSource{root: dir, metrics: metrics}
}

// Root returns the directory the source reads from.
func (s *DirSource) Root() string { return s.root }

// Fetch reads the document at the slash-separated path under the root.
func (s *DirSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	start := time.Now()
	data, err := os.ReadFile(filepath.Join(s.root, local))
	s.metrics.DocumentFetchDuration.WithLabelValues("dir").Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, domain.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Name identifies the source kind in logs.
func (s *DirSource) Name() string { return "dir" }
