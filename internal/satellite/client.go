// Package satellite retrieves NDVI time series for a coordinate from a
// vegetation-index service and summarizes them for the recommendation
// pipeline.
package satellite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"agrosense/crop-advisor-backend/internal/indices"
)

// Summary carries descriptive statistics over an NDVI series.
type Summary struct {
	Mean    float64 `json:"ndvi_mean"`
	Min     float64 `json:"ndvi_min"`
	Max     float64 `json:"ndvi_max"`
	StdDev  float64 `json:"ndvi_std"`
	Samples int     `json:"samples"`
}

// Client queries an NDVI observation service (a Sentinel-2 tile
// aggregator exposing per-date mean NDVI for a point).
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a satellite data client for the given service URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

type ndviResponse struct {
	Observations []struct {
		Date string  `json:"date"`
		NDVI float64 `json:"ndvi"`
	} `json:"observations"`
}

// FetchNDVISeries retrieves NDVI observations for the coordinate over
// the period. Records without a parseable date are skipped.
func (c *Client) FetchNDVISeries(ctx context.Context, lat, lon float64, start, end time.Time) ([]indices.NDVIObservation, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("satellite service is not configured")
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ndvi?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build satellite request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("satellite request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("satellite service returned status %d", resp.StatusCode)
	}

	var payload ndviResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode satellite response: %w", err)
	}

	observations := make([]indices.NDVIObservation, 0, len(payload.Observations))
	for _, obs := range payload.Observations {
		date, err := time.Parse("2006-01-02", obs.Date)
		if err != nil {
			continue
		}
		observations = append(observations, indices.NDVIObservation{Date: date, NDVI: obs.NDVI})
	}

	c.logger.Debug("fetched NDVI series",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Int("observations", len(observations)))

	return observations, nil
}

// Summarize computes descriptive statistics for an NDVI series. Returns
// nil for an empty series.
func Summarize(observations []indices.NDVIObservation) *Summary {
	if len(observations) == 0 {
		return nil
	}

	values := make([]float64, len(observations))
	for i, obs := range observations {
		values[i] = obs.NDVI
	}

	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	std, _ := stats.StandardDeviation(values)

	return &Summary{
		Mean:    mean,
		Min:     min,
		Max:     max,
		StdDev:  std,
		Samples: len(values),
	}
}
