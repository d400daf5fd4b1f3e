// Package datasource reads snapshot documents from a directory tree or an
// HTTP origin, with an optional in-memory cache and directory watcher.
package datasource

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// HTTPSource fetches snapshot documents from a static file origin. Failed
// fetches are not retried.
type HTTPSource struct {
	client  *resty.Client
	metrics *observability.Metrics
}

// NewHTTPSource creates a source rooted at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration, metrics *observability.Metrics) *HTTPSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0)
	return &HTTPSource{client: client, metrics: metrics}
}

// Fetch returns the body of the document at path, relative to the base URL.
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	defer func() {
		s.metrics.DocumentFetchDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	}()

	resp, err := s.client.R().
		SetContext(ctx).
		Get("/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("fetch %s: %w", path, domain.ErrNotFound)
	case resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299:
		return nil, fmt.Errorf("fetch %s: status %d", path, resp.StatusCode())
	}
	return resp.Body(), nil
}

// Name identifies the source kind in logs.
func (s *HTTPSource) Name() string { return "http" }
