package economics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrosense/crop-advisor-backend/internal/indices"
)

func TestEstimateYieldUnknownCrop(t *testing.T) {
	_, ok := EstimateYield("durian", 80, nil)
	assert.False(t, ok)
}

func TestEstimateYieldWithoutIndices(t *testing.T) {
	// Base wheat yield 35, score 100 -> factor 1.2, all index factors 1.
	forecast, ok := EstimateYield("wheat", 100, nil)
	require.True(t, ok)
	assert.InDelta(t, 42, forecast, 1e-9)

	// Score 0 bottoms out at half the base yield.
	floor, ok := EstimateYield("wheat", 0, nil)
	require.True(t, ok)
	assert.InDelta(t, 17.5, floor, 1e-9)
}

func TestEstimateYieldGTKFactors(t *testing.T) {
	optimal, _ := EstimateYield("wheat", 100, &indices.Result{GTK: &indices.GTKResult{Value: 1.2}})
	drought, _ := EstimateYield("wheat", 100, &indices.Result{GTK: &indices.GTKResult{Value: 0.5}})
	waterlogged, _ := EstimateYield("wheat", 100, &indices.Result{GTK: &indices.GTKResult{Value: 2.0}})
	neutral, _ := EstimateYield("wheat", 100, &indices.Result{GTK: &indices.GTKResult{Value: 1.7}})

	assert.InDelta(t, 42*1.1, optimal, 0.05)
	assert.InDelta(t, 42*0.8, drought, 0.05)
	assert.InDelta(t, 42*0.9, waterlogged, 0.05)
	assert.InDelta(t, 42, neutral, 0.05)
}

func TestEstimateYieldGDDFactors(t *testing.T) {
	// Wheat requires 1800 GDD.
	full, _ := EstimateYield("wheat", 100, &indices.Result{GDD: &indices.GDDResult{Total: 1900}})
	slight, _ := EstimateYield("wheat", 100, &indices.Result{GDD: &indices.GDDResult{Total: 1700}})
	short, _ := EstimateYield("wheat", 100, &indices.Result{GDD: &indices.GDDResult{Total: 1500}})
	severe, _ := EstimateYield("wheat", 100, &indices.Result{GDD: &indices.GDDResult{Total: 1000}})

	assert.InDelta(t, 42, full, 0.05)
	assert.InDelta(t, 42*0.95, slight, 0.05)
	assert.InDelta(t, 42*0.85, short, 0.05)
	assert.InDelta(t, 42*0.7, severe, 0.05)
}

func TestEstimateYieldSPIFactors(t *testing.T) {
	severe, _ := EstimateYield("wheat", 100, &indices.Result{SPI: &indices.SPIResult{Latest: -1.6}})
	moderate, _ := EstimateYield("wheat", 100, &indices.Result{SPI: &indices.SPIResult{Latest: -1.2}})
	wet, _ := EstimateYield("wheat", 100, &indices.Result{SPI: &indices.SPIResult{Latest: 1.6}})
	normal, _ := EstimateYield("wheat", 100, &indices.Result{SPI: &indices.SPIResult{Latest: 0.2}})

	assert.InDelta(t, 42*0.75, severe, 0.05)
	assert.InDelta(t, 42*0.9, moderate, 0.05)
	assert.InDelta(t, 42*0.95, wet, 0.05)
	assert.InDelta(t, 42, normal, 0.05)
}

func TestCalculateWheatAtBaseYield(t *testing.T) {
	// Wheat costs total 25000/ha, price 15000/t. At 35 c/ha:
	// revenue = 3.5 t * 15000 = 52500, profit = 27500.
	res, ok := Calculate("wheat", 35)
	require.True(t, ok)

	assert.InDelta(t, 25000, res.TotalCost, 1e-9)
	assert.InDelta(t, 52500, res.Revenue, 1e-9)
	assert.InDelta(t, 27500, res.Profit, 1e-9)
	assert.InDelta(t, 110.0, res.ROIPercent, 1e-9)
	assert.InDelta(t, 52.4, res.ProfitabilityPercent, 1e-9)
	assert.InDelta(t, 16.7, res.BreakevenYield, 1e-9)
	assert.InDelta(t, 15000, res.PricePerTon, 1e-9)
	assert.InDelta(t, 3.5, res.YieldTonsPerHa, 1e-9)
}

func TestCalculateZeroYield(t *testing.T) {
	res, ok := Calculate("wheat", 0)
	require.True(t, ok)

	assert.InDelta(t, 0, res.Revenue, 1e-9)
	assert.InDelta(t, -25000, res.Profit, 1e-9)
	assert.InDelta(t, 0, res.ProfitabilityPercent, 1e-9)
	assert.InDelta(t, -100, res.ROIPercent, 1e-9)
}

func TestCalculateUnknownCrop(t *testing.T) {
	res, ok := Calculate("durian", 35)

	assert.False(t, ok)
	assert.Nil(t, res)
}

func TestTablesCoverWholeCatalog(t *testing.T) {
	for _, id := range []string{"wheat", "corn", "sunflower", "soybean", "barley", "rapeseed", "potato", "sugar_beet"} {
		_, ok := Costs(id)
		assert.True(t, ok, id)
		_, ok = Price(id)
		assert.True(t, ok, id)
		_, ok = BaseYield(id)
		assert.True(t, ok, id)
	}
}
