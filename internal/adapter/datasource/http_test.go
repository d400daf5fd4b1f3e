package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

func TestHTTPSource_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/20250728/regions/region_key_20250728.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"1":"Alaska"}`))
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL+"/data/", 5*time.Second, observability.NewMetricsForTesting())
	data, err := s.Fetch(context.Background(), "20250728/regions/region_key_20250728.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"Alaska"}`, string(data))
}

func TestHTTPSource_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := NewHTTPSource(srv.URL, 5*time.Second, observability.NewMetricsForTesting())
	_, err := s.Fetch(context.Background(), "20250728/daily_summary.json")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHTTPSource_Fetch_ServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL, 5*time.Second, observability.NewMetricsForTesting())
	_, err := s.Fetch(context.Background(), "x.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, 1, calls, "failed fetches are not retried")
}

func TestHTTPSource_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL, 50*time.Millisecond, observability.NewMetricsForTesting())
	_, err := s.Fetch(context.Background(), "slow.json")
	require.Error(t, err)
}
