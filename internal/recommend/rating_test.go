package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agrosense/crop-advisor-backend/internal/economics"
	"agrosense/crop-advisor-backend/internal/risk"
)

func TestFinalRatingWithoutEconomicsFallsBackToSuitability(t *testing.T) {
	rating := FinalRating(73.4, nil, risk.Assessment{TotalRisk: 55})
	assert.InDelta(t, 73.4, rating, 1e-9)
}

func TestFinalRatingComposite(t *testing.T) {
	// suit 80, ROI 30 -> profit score 80, risk 20 -> risk score 80.
	// 0.4*80 + 0.4*80 + 0.2*80 = 80.
	rating := FinalRating(80, &economics.Result{ROIPercent: 30}, risk.Assessment{TotalRisk: 20})
	assert.InDelta(t, 80, rating, 1e-9)
}

func TestFinalRatingClampsProfitScore(t *testing.T) {
	// ROI 300% clamps the profit score at 100.
	high := FinalRating(50, &economics.Result{ROIPercent: 300}, risk.Assessment{TotalRisk: 0})
	assert.InDelta(t, 0.4*50+0.4*100+0.2*100, high, 1e-9)

	// Deeply negative ROI bottoms out at 0.
	low := FinalRating(50, &economics.Result{ROIPercent: -200}, risk.Assessment{TotalRisk: 100})
	assert.InDelta(t, 0.4*50, low, 1e-9)
}

func TestFinalRatingStaysInRange(t *testing.T) {
	for _, suit := range []float64{0, 25, 50, 75, 100} {
		for _, roi := range []float64{-150, -50, 0, 50, 150} {
			for _, totalRisk := range []float64{0, 30, 60, 100} {
				rating := FinalRating(suit, &economics.Result{ROIPercent: roi}, risk.Assessment{TotalRisk: totalRisk})
				assert.GreaterOrEqual(t, rating, 0.0)
				assert.LessOrEqual(t, rating, 100.0)
			}
		}
	}
}
