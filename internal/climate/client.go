// Package climate fetches historical daily weather for a coordinate
// from the open-meteo ERA5 archive API and aggregates it into the
// summary the recommendation core consumes.
package climate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL points at the public open-meteo ERA5 archive endpoint.
const DefaultBaseURL = "https://archive-api.open-meteo.com/v1/archive"

// Summary is the aggregated climate picture for one location and period.
type Summary struct {
	TemperatureAvg       []float64 `json:"temperature_avg"`        // daily means (deg C)
	TemperatureMin       float64   `json:"temperature_min"`        // period minimum (deg C)
	TemperatureMax       float64   `json:"temperature_max"`        // period maximum (deg C)
	PrecipitationDaily   []float64 `json:"precipitation_daily"`    // mm/day
	PrecipitationMonthly []float64 `json:"precipitation_monthly"`  // mm/month, for SPI
	PrecipitationSum     float64   `json:"precipitation_sum"`      // mm over the period
	RadiationSum         float64   `json:"radiation_sum"`          // MJ/m2 over the period
	Start                time.Time `json:"start"`
	End                  time.Time `json:"end"`
}

// Client talks to the archive API. It performs a single request per
// call: retry and caching policy belong to the operator, not here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an archive client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// archiveResponse mirrors the open-meteo daily payload.
type archiveResponse struct {
	Daily struct {
		Time                  []string  `json:"time"`
		Temperature2mMean     []float64 `json:"temperature_2m_mean"`
		Temperature2mMin      []float64 `json:"temperature_2m_min"`
		Temperature2mMax      []float64 `json:"temperature_2m_max"`
		PrecipitationSum      []float64 `json:"precipitation_sum"`
		ShortwaveRadiationSum []float64 `json:"shortwave_radiation_sum"`
	} `json:"daily"`
}

// FetchDailyArchive retrieves daily climate data for the coordinate and
// period and aggregates it into a Summary.
func (c *Client) FetchDailyArchive(ctx context.Context, lat, lon float64, start, end time.Time) (*Summary, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))
	params.Set("daily", "temperature_2m_mean,temperature_2m_min,temperature_2m_max,precipitation_sum,shortwave_radiation_sum")
	params.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build climate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("climate archive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("climate archive returned status %d", resp.StatusCode)
	}

	var payload archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode climate response: %w", err)
	}

	if len(payload.Daily.Temperature2mMean) == 0 {
		return nil, fmt.Errorf("climate archive returned no daily data")
	}

	summary := aggregate(payload, start, end)

	c.logger.Debug("fetched climate archive",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Int("days", len(summary.TemperatureAvg)),
		zap.Float64("precipitation_sum", summary.PrecipitationSum))

	return summary, nil
}

func aggregate(payload archiveResponse, start, end time.Time) *Summary {
	daily := payload.Daily

	summary := &Summary{
		TemperatureAvg:     daily.Temperature2mMean,
		PrecipitationDaily: daily.PrecipitationSum,
		Start:              start,
		End:                end,
	}

	for i, t := range daily.Temperature2mMin {
		if i == 0 || t < summary.TemperatureMin {
			summary.TemperatureMin = t
		}
	}
	for i, t := range daily.Temperature2mMax {
		if i == 0 || t > summary.TemperatureMax {
			summary.TemperatureMax = t
		}
	}
	for _, p := range daily.PrecipitationSum {
		summary.PrecipitationSum += p
	}
	for _, r := range daily.ShortwaveRadiationSum {
		summary.RadiationSum += r
	}

	summary.PrecipitationMonthly = monthlyTotals(daily.Time, daily.PrecipitationSum)

	return summary
}

// monthlyTotals buckets daily precipitation into calendar months, the
// period granularity the SPI calculation expects.
func monthlyTotals(dates []string, precipitation []float64) []float64 {
	var (
		totals  []float64
		current string
	)

	for i, d := range dates {
		if i >= len(precipitation) {
			break
		}
		month := d
		if len(d) >= 7 {
			month = d[:7] // YYYY-MM
		}
		if month != current {
			totals = append(totals, 0)
			current = month
		}
		totals[len(totals)-1] += precipitation[i]
	}

	return totals
}
