package climate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchDailyArchive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "53.2000", r.URL.Query().Get("latitude"))
		assert.Equal(t, "UTC", r.URL.Query().Get("timezone"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily": {
			"time": ["2026-05-30", "2026-05-31", "2026-06-01"],
			"temperature_2m_mean": [15, 17, 19],
			"temperature_2m_min": [8, 6, 9],
			"temperature_2m_max": [22, 25, 27],
			"precipitation_sum": [2, 0, 5],
			"shortwave_radiation_sum": [20, 22, 24]
		}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	start := time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	summary, err := client.FetchDailyArchive(context.Background(), 53.2, 50.1, start, end)
	require.NoError(t, err)

	assert.Equal(t, []float64{15, 17, 19}, summary.TemperatureAvg)
	assert.InDelta(t, 6, summary.TemperatureMin, 1e-9)
	assert.InDelta(t, 27, summary.TemperatureMax, 1e-9)
	assert.InDelta(t, 7, summary.PrecipitationSum, 1e-9)
	assert.InDelta(t, 66, summary.RadiationSum, 1e-9)

	// Two days of May, one of June.
	assert.Equal(t, []float64{2, 5}, summary.PrecipitationMonthly)
}

func TestFetchDailyArchiveEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	_, err := client.FetchDailyArchive(context.Background(), 53.2, 50.1, time.Now().AddDate(0, 0, -7), time.Now())
	assert.ErrorContains(t, err, "no daily data")
}

func TestFetchDailyArchiveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	_, err := client.FetchDailyArchive(context.Background(), 53.2, 50.1, time.Now().AddDate(0, 0, -7), time.Now())
	assert.ErrorContains(t, err, "status 429")
}

func TestMonthlyTotals(t *testing.T) {
	dates := []string{"2026-04-29", "2026-04-30", "2026-05-01", "2026-05-02"}
	precip := []float64{1, 2, 3, 4}

	totals := monthlyTotals(dates, precip)

	assert.Equal(t, []float64{3, 7}, totals)
}
