// Package soil queries the ISRIC SoilGrids API for soil properties at a
// coordinate and classifies the texture class the suitability scorer
// consumes.
package soil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL points at the public SoilGrids v2 properties endpoint.
const DefaultBaseURL = "https://rest.isric.org/soilgrids/v2.0/properties/query"

// Profile is the processed soil picture for one coordinate.
type Profile struct {
	ClayPercent          float64 `json:"clay_percent"`
	SandPercent          float64 `json:"sand_percent"`
	SiltPercent          float64 `json:"silt_percent"`
	PHWater              float64 `json:"ph_water"`
	OrganicCarbonPercent float64 `json:"organic_carbon_percent"`
	TextureClass         string  `json:"texture_class"`
}

// Client talks to SoilGrids.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a SoilGrids client. An empty baseURL selects the
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

// soilgridsResponse mirrors the subset of the SoilGrids payload we use.
type soilgridsResponse struct {
	Properties struct {
		Layers []struct {
			Name   string `json:"name"`
			Depths []struct {
				Label  string `json:"label"`
				Values struct {
					Mean *float64 `json:"mean"`
				} `json:"values"`
			} `json:"depths"`
		} `json:"layers"`
	} `json:"properties"`
}

// FetchProfile retrieves clay/sand/silt/pH/organic-carbon means for the
// coordinate and derives the USDA texture class.
func (c *Client) FetchProfile(ctx context.Context, lat, lon float64) (*Profile, error) {
	params := url.Values{}
	params.Set("lon", fmt.Sprintf("%.4f", lon))
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	for _, prop := range []string{"clay", "sand", "silt", "phh2o", "soc"} {
		params.Add("property", prop)
	}
	for _, depth := range []string{"0-5cm", "5-15cm", "15-30cm"} {
		params.Add("depth", depth)
	}
	params.Set("value", "mean")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build soil request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("soilgrids request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("soilgrids returned status %d", resp.StatusCode)
	}

	var payload soilgridsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode soilgrids response: %w", err)
	}

	profile := buildProfile(payload)
	if profile == nil {
		return nil, fmt.Errorf("soilgrids returned no usable layers")
	}

	c.logger.Debug("fetched soil profile",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.String("texture", profile.TextureClass))

	return profile, nil
}

func buildProfile(payload soilgridsResponse) *Profile {
	means := map[string]float64{}
	found := false

	for _, layer := range payload.Properties.Layers {
		var sum float64
		var n int
		for _, depth := range layer.Depths {
			if depth.Values.Mean != nil {
				sum += *depth.Values.Mean
				n++
			}
		}
		if n > 0 {
			means[layer.Name] = sum / float64(n)
			found = true
		}
	}
	if !found {
		return nil
	}

	// SoilGrids encodes clay/sand/silt in g/kg, pH in pH*10, and soil
	// organic carbon in dg/kg.
	profile := &Profile{
		ClayPercent:          means["clay"] / 10,
		SandPercent:          means["sand"] / 10,
		SiltPercent:          means["silt"] / 10,
		PHWater:              means["phh2o"] / 10,
		OrganicCarbonPercent: means["soc"] / 100,
	}
	profile.TextureClass = ClassifyTexture(profile.ClayPercent, profile.SandPercent, profile.SiltPercent)

	return profile
}
