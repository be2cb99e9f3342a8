package satellite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrosense/crop-advisor-backend/internal/indices"
)

func TestFetchNDVISeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ndvi", r.URL.Path)
		assert.Equal(t, "53.2000", r.URL.Query().Get("latitude"))
		assert.NotEmpty(t, r.URL.Query().Get("start_date"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"observations": [
			{"date": "2026-05-01", "ndvi": 0.42},
			{"date": "bogus", "ndvi": 0.99},
			{"date": "2026-05-15", "ndvi": 0.51}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	end := time.Now().UTC()
	observations, err := client.FetchNDVISeries(context.Background(), 53.2, 50.1, end.AddDate(0, 0, -30), end)
	require.NoError(t, err)

	// The unparseable record is skipped.
	require.Len(t, observations, 2)
	assert.InDelta(t, 0.42, observations[0].NDVI, 1e-9)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), observations[1].Date)
}

func TestFetchNDVISeriesUnconfigured(t *testing.T) {
	client := NewClient("", zap.NewNop())

	_, err := client.FetchNDVISeries(context.Background(), 53.2, 50.1, time.Now().AddDate(0, 0, -30), time.Now())
	assert.Error(t, err)
}

func TestFetchNDVISeriesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	_, err := client.FetchNDVISeries(context.Background(), 53.2, 50.1, time.Now().AddDate(0, 0, -30), time.Now())
	assert.ErrorContains(t, err, "status 502")
}

func TestSummarize(t *testing.T) {
	obs := []indices.NDVIObservation{
		{NDVI: 0.4},
		{NDVI: 0.5},
		{NDVI: 0.6},
	}

	summary := Summarize(obs)
	require.NotNil(t, summary)

	assert.InDelta(t, 0.5, summary.Mean, 1e-9)
	assert.InDelta(t, 0.4, summary.Min, 1e-9)
	assert.InDelta(t, 0.6, summary.Max, 1e-9)
	assert.Greater(t, summary.StdDev, 0.0)
	assert.Equal(t, 3, summary.Samples)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Nil(t, Summarize(nil))
}
