// Package economics converts suitability scores into yield forecasts
// and yield forecasts into cost/revenue/profit figures, using static
// regional cost and price tables. All functions are pure.
package economics

import (
	"math"

	"agrosense/crop-advisor-backend/internal/catalog"
	"agrosense/crop-advisor-backend/internal/indices"
)

func gddRequirement(cropID string) (float64, bool) {
	profile, ok := catalog.Get(cropID)
	if !ok {
		return 0, false
	}
	return profile.GDDRequirement, true
}

// EstimateYield forecasts yield (centner/ha) for a crop as the base
// average yield scaled by the suitability score and the season's
// moisture, heat, and drought indices. Returns false when the crop has
// no base-yield entry.
//
// suitability_factor spans 0.5 (score 0) to 1.2 (score 100).
func EstimateYield(cropID string, suitabilityScore float64, idx *indices.Result) (float64, bool) {
	baseYield, ok := BaseYield(cropID)
	if !ok {
		return 0, false
	}

	suitabilityFactor := 0.5 + (suitabilityScore/100)*0.7

	gtkFactor := 1.0
	if idx != nil && idx.GTK != nil {
		switch gtk := idx.GTK.Value; {
		case gtk >= 1.0 && gtk <= 1.5:
			gtkFactor = 1.1 // optimal moisture
		case gtk < 0.7:
			gtkFactor = 0.8 // drought
		case gtk > 1.8:
			gtkFactor = 0.9 // waterlogging
		}
	}

	gddFactor := 1.0
	if idx != nil && idx.GDD != nil {
		if required, ok := gddRequirement(cropID); ok {
			switch ratio := idx.GDD.Total / required; {
			case ratio >= 1.0:
				gddFactor = 1.0
			case ratio >= 0.9:
				gddFactor = 0.95
			case ratio >= 0.8:
				gddFactor = 0.85
			default:
				gddFactor = 0.7
			}
		}
	}

	spiFactor := 1.0
	if idx != nil && idx.SPI != nil {
		switch spi := idx.SPI.Latest; {
		case spi < -1.5:
			spiFactor = 0.75 // severe drought
		case spi < -1.0:
			spiFactor = 0.9
		case spi > 1.5:
			spiFactor = 0.95
		}
	}

	estimated := baseYield * suitabilityFactor * gtkFactor * gddFactor * spiFactor
	return math.Round(estimated*10) / 10, true
}
