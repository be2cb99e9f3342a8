package recommend

import (
	"math"

	"agrosense/crop-advisor-backend/internal/economics"
	"agrosense/crop-advisor-backend/internal/risk"
)

// FinalRating combines suitability, profitability, and risk into the
// composite 0-100 rating that orders the recommendation:
//
//	rating = 0.4*suitability + 0.4*profit_score + 0.2*(100 - risk)
//
// where profit_score maps ROI onto 0-100 (ROI 0% -> 50, +50% -> 100,
// clamped at both ends). When economics could not be computed the raw
// suitability score is returned unchanged.
func FinalRating(suitabilityScore float64, econ *economics.Result, assessment risk.Assessment) float64 {
	if econ == nil {
		return suitabilityScore
	}

	profitScore := math.Min(100, math.Max(0, 50+econ.ROIPercent))
	suit := clamp(suitabilityScore, 0, 100)
	riskScore := 100 - clamp(assessment.TotalRisk, 0, 100)

	rating := 0.4*suit + 0.4*profitScore + 0.2*riskScore
	return math.Round(rating*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
