package recommend

import (
	"agrosense/crop-advisor-backend/internal/climate"
	"agrosense/crop-advisor-backend/internal/indices"
	"agrosense/crop-advisor-backend/internal/soil"
	"agrosense/crop-advisor-backend/internal/suitability"
)

// PrepareRegionFeatures aggregates climate, soil, and index data into
// the feature set the suitability scorer consumes. Every input may be
// nil or partial; absent values stay nil in the result and the scorer
// applies its own fallbacks.
func PrepareRegionFeatures(summary *climate.Summary, soilProfile *soil.Profile, idx *indices.Result) suitability.RegionFeatures {
	features := suitability.RegionFeatures{}

	if summary != nil {
		if len(summary.TemperatureAvg) > 0 {
			features.TemperatureAvg = suitability.Float64(mean(summary.TemperatureAvg))
		}
		features.TemperatureMinWinter = suitability.Float64(summary.TemperatureMin)
		features.PrecipitationAnnual = suitability.Float64(summary.PrecipitationSum)
		features.RadiationSum = suitability.Float64(summary.RadiationSum)
	}

	if soilProfile != nil && soilProfile.TextureClass != "" && soilProfile.TextureClass != "unknown" {
		features.SoilType = soilProfile.TextureClass
	}

	if idx != nil {
		if idx.GDD != nil {
			features.GDDTotal = suitability.Float64(idx.GDD.Total)
		}
		if idx.GTK != nil {
			features.GTK = suitability.Float64(idx.GTK.Value)
		}
		if idx.SPI != nil {
			features.SPI = suitability.Float64(idx.SPI.Latest)
		}
		if idx.LAI != nil {
			features.LAI = suitability.Float64(idx.LAI.LAI)
		}
	}

	// Without a direct soil moisture measurement, infer it from the
	// hydrothermal coefficient; absent GTK assumes the neutral 1.0.
	if features.SoilMoisture == nil {
		gtk := 1.0
		if features.GTK != nil {
			gtk = *features.GTK
		}
		features.SoilMoisture = suitability.Float64(inferSoilMoisture(gtk))
	}

	return features
}

func inferSoilMoisture(gtk float64) float64 {
	switch {
	case gtk > 1.3:
		return 0.8
	case gtk > 1.0:
		return 0.7
	case gtk > 0.7:
		return 0.6
	default:
		return 0.5
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
