// Package suitability scores crops against regional growing conditions
// using a weighted multi-criteria model and ranks the crop catalog by
// the resulting score. Scoring is pure: no I/O, no mutation of the
// catalog, identical inputs give identical outputs.
package suitability

import (
	"fmt"
	"math"
	"sort"

	"agrosense/crop-advisor-backend/internal/catalog"
)

// Criterion identifiers used in score breakdowns.
const (
	CriterionTemperature   = "temperature"
	CriterionPrecipitation = "precipitation"
	CriterionSoil          = "soil"
	CriterionGDD           = "gdd"
	CriterionMoisture      = "moisture"
	CriterionRadiation     = "radiation"
	CriterionFrost         = "frost"
)

// criterionWeights sum to 1.0.
var criterionWeights = map[string]float64{
	CriterionTemperature:   0.20,
	CriterionPrecipitation: 0.20,
	CriterionSoil:          0.15,
	CriterionGDD:           0.15,
	CriterionMoisture:      0.10,
	CriterionRadiation:     0.10,
	CriterionFrost:         0.10,
}

// Missing-input fallbacks. Most criteria fall back to a neutral 0.5;
// soil moisture and radiation assume likely-adequate conditions at 0.7.
// These constants are part of the observable scoring contract.
const (
	fallbackNeutral  = 0.5
	fallbackAdequate = 0.7
)

// CriterionScore is one criterion's contribution, on a 0-100 scale,
// with a human-readable justification.
type CriterionScore struct {
	Score  float64 `json:"score"`
	Detail string  `json:"detail"`
}

// Result is a crop's suitability evaluation for one region. It is
// created fresh per (region, crop) pair and not mutated afterwards;
// downstream stages attach yield, economics, and risk to their own
// records, never to the breakdown here.
type Result struct {
	Crop           string                    `json:"crop"`
	CropName       string                    `json:"crop_name"`
	Score          float64                   `json:"suitability_score"`
	Interpretation string                    `json:"interpretation"`
	Breakdown      map[string]CriterionScore `json:"breakdown"`
}

// Score evaluates one crop against a region's features. It returns
// (nil, false) when the crop identifier is not in the catalog; missing
// region inputs never fail the evaluation.
func Score(features RegionFeatures, cropID string) (*Result, bool) {
	profile, ok := catalog.Get(cropID)
	if !ok {
		return nil, false
	}

	breakdown := map[string]CriterionScore{
		CriterionTemperature:   scoreTemperature(features, profile),
		CriterionPrecipitation: scorePrecipitation(features, profile),
		CriterionSoil:          scoreSoil(features, profile),
		CriterionGDD:           scoreGDD(features, profile),
		CriterionMoisture:      scoreMoisture(features, profile),
		CriterionRadiation:     scoreRadiation(features, profile),
		CriterionFrost:         scoreFrost(features, profile),
	}

	var weighted float64
	for name, weight := range criterionWeights {
		weighted += (breakdown[name].Score / 100) * weight
	}

	score := round1(weighted * 100)

	return &Result{
		Crop:           cropID,
		CropName:       profile.Name,
		Score:          score,
		Interpretation: Interpret(score),
		Breakdown:      breakdown,
	}, true
}

// Interpret maps a 0-100 suitability score to its qualitative band.
func Interpret(score float64) string {
	switch {
	case score >= 80:
		return "high suitability"
	case score >= 60:
		return "good suitability"
	case score >= 40:
		return "moderate suitability"
	default:
		return "low suitability"
	}
}

func scoreTemperature(f RegionFeatures, p *catalog.CropProfile) CriterionScore {
	if f.TemperatureAvg == nil {
		return CriterionScore{Score: fallbackNeutral * 100, Detail: "no data"}
	}

	t := *f.TemperatureAvg
	if t >= p.TOptMin && t <= p.TOptMax {
		return CriterionScore{Score: 100, Detail: fmt.Sprintf("optimal (%.1f deg C)", t)}
	}

	deviation := math.Min(math.Abs(t-p.TOptMin), math.Abs(t-p.TOptMax))
	score := math.Max(0, 1-deviation/10)
	return CriterionScore{
		Score:  round1(score * 100),
		Detail: fmt.Sprintf("%.1f deg C off the optimal range", deviation),
	}
}

func scorePrecipitation(f RegionFeatures, p *catalog.CropProfile) CriterionScore {
	if f.PrecipitationAnnual == nil {
		return CriterionScore{Score: fallbackNeutral * 100, Detail: "no data"}
	}

	precip := *f.PrecipitationAnnual
	if precip >= p.PrecipMin {
		// Gaussian centered on the crop optimum, sigma = 0.3 * optimum.
		sigma := 0.3 * p.PrecipOpt
		score := math.Exp(-math.Pow((precip-p.PrecipOpt)/sigma, 2))
		return CriterionScore{
			Score:  round1(score * 100),
			Detail: fmt.Sprintf("adequate (%.0f mm)", precip),
		}
	}

	score := precip / p.PrecipMin * 0.5
	return CriterionScore{
		Score:  round1(score * 100),
		Detail: fmt.Sprintf("well below minimum (%.0f < %.0f mm)", precip, p.PrecipMin),
	}
}

func scoreSoil(f RegionFeatures, p *catalog.CropProfile) CriterionScore {
	if f.SoilType == "" {
		return CriterionScore{Score: fallbackNeutral * 100, Detail: "no data"}
	}

	if p.PrefersSoil(f.SoilType) {
		return CriterionScore{Score: 100, Detail: fmt.Sprintf("preferred texture (%s)", f.SoilType)}
	}
	return CriterionScore{Score: 50, Detail: fmt.Sprintf("non-preferred texture (%s)", f.SoilType)}
}

func scoreGDD(f RegionFeatures, p *catalog.CropProfile) CriterionScore {
	if f.GDDTotal == nil {
		return CriterionScore{Score: fallbackNeutral * 100, Detail: "no data"}
	}

	actual := *f.GDDTotal
	if actual >= p.GDDRequirement {
		return CriterionScore{
			Score:  100,
			Detail: fmt.Sprintf("sufficient (%.0f >= %.0f)", actual, p.GDDRequirement),
		}
	}
	return CriterionScore{
		Score:  round1(actual / p.GDDRequirement * 100),
		Detail: fmt.Sprintf("short of requirement (%.0f / %.0f)", actual, p.GDDRequirement),
	}
}

func scoreMoisture(f RegionFeatures, p *catalog.CropProfile) CriterionScore {
	if f.SoilMoisture == nil {
		return CriterionScore{Score: fallbackAdequate * 100, Detail: "no data, assumed adequate"}
	}

	score := math.Min(1, *f.SoilMoisture/p.SoilMoistureMin)
	return CriterionScore{
		Score:  round1(score * 100),
		Detail: fmt.Sprintf("moisture %.2f (minimum %.2f)", *f.SoilMoisture, p.SoilMoistureMin),
	}
}

func scoreRadiation(f RegionFeatures, p *catalog.CropProfile) CriterionScore {
	if f.RadiationSum == nil {
		return CriterionScore{Score: fallbackAdequate * 100, Detail: "no data, assumed adequate"}
	}

	q := *f.RadiationSum
	if q >= p.RadiationMin {
		return CriterionScore{Score: 100, Detail: fmt.Sprintf("sufficient (%.0f MJ/m2)", q)}
	}
	return CriterionScore{
		Score:  round1(q / p.RadiationMin * 100),
		Detail: fmt.Sprintf("short of requirement (%.0f / %.0f)", q, p.RadiationMin),
	}
}

func scoreFrost(f RegionFeatures, p *catalog.CropProfile) CriterionScore {
	if f.TemperatureMinWinter == nil {
		return CriterionScore{Score: fallbackNeutral * 100, Detail: "no data"}
	}

	tMin := *f.TemperatureMinWinter
	if tMin >= p.FrostTolerance {
		return CriterionScore{
			Score:  100,
			Detail: fmt.Sprintf("frost within tolerance (%.1f >= %.1f deg C)", tMin, p.FrostTolerance),
		}
	}

	deviation := math.Abs(p.FrostTolerance - tMin)
	score := math.Max(0, 1-deviation/10)
	return CriterionScore{
		Score:  round1(score * 100),
		Detail: fmt.Sprintf("winterkill risk (%.1f < %.1f deg C)", tMin, p.FrostTolerance),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// sortByScore orders results descending by score, keeping catalog order
// for ties.
func sortByScore(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
