package indices

import (
	"fmt"
	"math"
)

// Empirical constants of the Baret et al. NDVI-to-LAI relationship and
// the light-extinction coefficient used for FPAR.
const (
	laiNDVIFloor    = -0.2
	laiNDVICeil     = 0.68
	laiMax          = 8.0
	lightExtinction = 0.5
)

// LAIResult holds a leaf-area-index estimate derived from NDVI samples.
type LAIResult struct {
	LAI      float64 `json:"lai_estimated"`
	FPAR     float64 `json:"fpar"`
	NDVIMean float64 `json:"ndvi_mean"`
	Samples  int     `json:"samples"`
}

// EstimateLAIFromNDVI converts a vegetation-index value to leaf area
// index via the inverted Baret relationship
// LAI = -ln((0.69 - NDVI) / 0.59) / 0.91. NDVI is first clipped to
// [-0.2, 0.68] and the log argument floored at 0.001; the result is
// clipped to the physical range [0, 8].
func EstimateLAIFromNDVI(ndvi float64) float64 {
	clipped := math.Min(math.Max(ndvi, laiNDVIFloor), laiNDVICeil)

	ratio := (0.69 - clipped) / 0.59
	if ratio < 0.001 {
		ratio = 0.001
	}

	lai := -math.Log(ratio) / 0.91
	return math.Min(math.Max(lai, 0), laiMax)
}

// FPARFromLAI returns the fraction of photosynthetically active
// radiation absorbed by a canopy with the given leaf area index:
// FPAR = 1 - exp(-k * LAI) with k = 0.5.
func FPARFromLAI(lai float64) float64 {
	return 1 - math.Exp(-lightExtinction*lai)
}

// CalculateLAI estimates LAI and FPAR from the mean of an NDVI
// observation series.
func CalculateLAI(observations []NDVIObservation) (*LAIResult, error) {
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: no NDVI observations", ErrInsufficientData)
	}

	var sum float64
	for _, obs := range observations {
		sum += obs.NDVI
	}
	mean := sum / float64(len(observations))

	lai := EstimateLAIFromNDVI(mean)

	return &LAIResult{
		LAI:      round2(lai),
		FPAR:     round2(FPARFromLAI(lai)),
		NDVIMean: round3(mean),
		Samples:  len(observations),
	}, nil
}
