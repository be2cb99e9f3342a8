// Package indices derives agronomic indices (GDD, GTK, SPI, LAI/FPAR)
// from raw daily climate and vegetation series. Every calculation is a
// pure function of its inputs: no I/O, no shared state, safe to call
// concurrently. Expected missing-data conditions are reported through
// ErrInsufficientData, never through panics.
package indices

import (
	"errors"
	"math"
	"time"
)

// ErrInsufficientData marks an index that could not be computed because
// its required inputs are absent or too short.
var ErrInsufficientData = errors.New("insufficient data")

// ClimateInputs carries the raw daily series the calculator consumes.
// Any field may be empty; each index checks its own preconditions.
type ClimateInputs struct {
	TemperatureAvg   []float64 // daily mean temperature (deg C)
	Precipitation    []float64 // per-period precipitation (mm)
	PrecipitationSum *float64  // seasonal precipitation total (mm)
}

// NDVIObservation is a single satellite vegetation-index sample.
type NDVIObservation struct {
	Date time.Time `json:"date"`
	NDVI float64   `json:"ndvi"`
}

// Result aggregates the four independent sub-calculations. A nil field
// means the corresponding index could not be computed; the remaining
// fields are unaffected.
type Result struct {
	GDD *GDDResult `json:"gdd,omitempty"`
	GTK *GTKResult `json:"gtk,omitempty"`
	SPI *SPIResult `json:"spi,omitempty"`
	LAI *LAIResult `json:"lai,omitempty"`
}

// Calculate computes all indices for a region. Missing preconditions for
// one index never block the others.
func Calculate(climate ClimateInputs, ndvi []NDVIObservation) *Result {
	res := &Result{}

	var activeTempSum float64
	if len(climate.TemperatureAvg) > 0 {
		res.GDD = CalculateGDD(climate.TemperatureAvg, DefaultTBase, DefaultTUpper)
		activeTempSum = ActiveTemperatureSum(climate.TemperatureAvg)
	}

	if sum, ok := precipitationTotal(climate); ok {
		if gtk, err := CalculateGTK(sum, activeTempSum); err == nil {
			res.GTK = gtk
		}
	}

	if spi, err := CalculateSPI(climate.Precipitation, DefaultSPITimescale); err == nil {
		res.SPI = spi
	}

	if lai, err := CalculateLAI(ndvi); err == nil {
		res.LAI = lai
	}

	return res
}

// precipitationTotal resolves the seasonal precipitation sum, preferring
// the explicit scalar over the sum of the per-period series.
func precipitationTotal(climate ClimateInputs) (float64, bool) {
	if climate.PrecipitationSum != nil {
		return *climate.PrecipitationSum, true
	}
	if len(climate.Precipitation) > 0 {
		var sum float64
		for _, p := range climate.Precipitation {
			sum += p
		}
		return sum, true
	}
	return 0, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
