// Package risk scores climate hazards for growing a crop in a region.
// Each hazard uses fixed tiered thresholds on a 0-100 scale (higher is
// worse); missing inputs fall back to fixed moderate defaults rather
// than failing.
package risk

import (
	"math"

	"agrosense/crop-advisor-backend/internal/catalog"
	"agrosense/crop-advisor-backend/internal/indices"
)

// Hazard identifiers used in assessment breakdowns.
const (
	HazardDrought        = "drought"
	HazardFrost          = "frost"
	HazardExcessMoisture = "excess_moisture"
	HazardHeatDeficit    = "heat_deficit"
)

var hazardWeights = map[string]float64{
	HazardDrought:        0.35,
	HazardFrost:          0.25,
	HazardExcessMoisture: 0.20,
	HazardHeatDeficit:    0.20,
}

// Assessment is the weighted climate-risk profile for one crop.
type Assessment struct {
	TotalRisk      float64            `json:"total_risk"`
	Interpretation string             `json:"interpretation"`
	Recommendation string             `json:"recommendation"`
	Breakdown      map[string]float64 `json:"risk_breakdown"`
}

// Assess scores drought, frost, excess-moisture, and heat-deficit
// hazards for a crop. temperatureMin is the winter minimum temperature
// (nil when unknown); idx may be nil or partially populated.
func Assess(cropID string, temperatureMin *float64, idx *indices.Result) Assessment {
	breakdown := map[string]float64{
		HazardDrought:        droughtRisk(idx),
		HazardFrost:          frostRisk(cropID, temperatureMin),
		HazardExcessMoisture: excessMoistureRisk(idx),
		HazardHeatDeficit:    heatDeficitRisk(cropID, idx),
	}

	var total float64
	for hazard, weight := range hazardWeights {
		total += breakdown[hazard] * weight
	}
	total = math.Round(total*10) / 10

	interpretation, recommendation := Interpret(total)

	return Assessment{
		TotalRisk:      total,
		Interpretation: interpretation,
		Recommendation: recommendation,
		Breakdown:      breakdown,
	}
}

// Interpret maps a total risk score to its band and the fixed
// recommendation paired with it.
func Interpret(totalRisk float64) (interpretation, recommendation string) {
	switch {
	case totalRisk < 20:
		return "low risk", "Conditions are favorable for cultivation"
	case totalRisk < 40:
		return "moderate risk", "Standard agronomic practices are recommended"
	case totalRisk < 60:
		return "elevated risk", "Additional protective measures are required"
	default:
		return "high risk", "Consider alternative crops for this region"
	}
}

func droughtRisk(idx *indices.Result) float64 {
	if idx == nil || idx.SPI == nil {
		return 20 // moderate default
	}
	switch spi := idx.SPI.Latest; {
	case spi < -2.0:
		return 90
	case spi < -1.5:
		return 60
	case spi < -1.0:
		return 30
	default:
		return 10
	}
}

func frostRisk(cropID string, temperatureMin *float64) float64 {
	if temperatureMin == nil {
		return 15
	}
	profile, ok := catalog.Get(cropID)
	if !ok {
		return 20
	}

	tMin := *temperatureMin
	switch tolerance := profile.FrostTolerance; {
	case tMin < tolerance-5:
		return 80
	case tMin < tolerance:
		return 50
	case tMin < tolerance+2:
		return 20
	default:
		return 5
	}
}

func excessMoistureRisk(idx *indices.Result) float64 {
	if idx == nil || idx.GTK == nil {
		return 15
	}
	switch gtk := idx.GTK.Value; {
	case gtk > 2.0:
		return 70
	case gtk > 1.6:
		return 40
	default:
		return 10
	}
}

func heatDeficitRisk(cropID string, idx *indices.Result) float64 {
	if idx == nil || idx.GDD == nil {
		return 25
	}
	profile, ok := catalog.Get(cropID)
	if !ok {
		return 20
	}

	switch ratio := idx.GDD.Total / profile.GDDRequirement; {
	case ratio < 0.75:
		return 80
	case ratio < 0.9:
		return 50
	case ratio < 1.0:
		return 20
	default:
		return 5
	}
}
