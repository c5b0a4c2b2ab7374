package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kostyay/basementhq/internal/model"
)

func TestFiltering_Stats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "pw", pass)
		assert.Equal(t, "/control/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"num_dns_queries":200,"num_blocked_filtering":50,"avg_processing_time":0.1}`))
	}))
	defer srv.Close()

	res := NewFiltering(srv.URL, "admin", "pw", nil).Collect(context.Background())

	assert.True(t, res.IsOK())
	assert.Equal(t, model.FilteringStats{TotalQueries: 200, BlockedQueries: 50, BlockRate: 25}, res.Value)
}

func TestFiltering_ZeroTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"num_dns_queries":0,"num_blocked_filtering":0}`))
	}))
	defer srv.Close()

	res := NewFiltering(srv.URL, "", "", nil).Collect(context.Background())

	assert.True(t, res.IsOK())
	assert.Equal(t, 0.0, res.Value.BlockRate)
}

func TestFiltering_HTTPErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	res := NewFiltering(srv.URL, "admin", "bad", nil).Collect(context.Background())

	assert.Equal(t, model.StatusDegraded, res.Status)
	assert.Equal(t, "401 Unauthorized", res.Reason)
}

func TestFiltering_MissingFieldsIsDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	res := NewFiltering(srv.URL, "", "", nil).Collect(context.Background())

	assert.Equal(t, model.StatusDegraded, res.Status)
	assert.Equal(t, "bad response", res.Reason)
}

func TestFiltering_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rep := NewFiltering(url, "", "", nil).Poll(context.Background())

	assert.Equal(t, model.StatusUnavailable, rep.Status)
	assert.Nil(t, rep.Payload)
}

func TestNewFilteringStats(t *testing.T) {
	assert.InDelta(t, 33.333, NewFilteringStats(3, 1).BlockRate, 0.001)
	assert.Equal(t, 0.0, NewFilteringStats(0, 5).BlockRate)
}
