package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrosense/crop-advisor-backend/internal/climate"
	"agrosense/crop-advisor-backend/internal/indices"
	"agrosense/crop-advisor-backend/internal/soil"
)

func TestPrepareRegionFeaturesEmptyInputs(t *testing.T) {
	features := PrepareRegionFeatures(nil, nil, nil)

	assert.Nil(t, features.TemperatureAvg)
	assert.Nil(t, features.PrecipitationAnnual)
	assert.Empty(t, features.SoilType)
	assert.Nil(t, features.GDDTotal)

	// Soil moisture is always inferred, neutral GTK gives 0.6.
	require.NotNil(t, features.SoilMoisture)
	assert.InDelta(t, 0.6, *features.SoilMoisture, 1e-9)
}

func TestPrepareRegionFeaturesAggregatesInputs(t *testing.T) {
	summary := &climate.Summary{
		TemperatureAvg:   []float64{10, 20, 30},
		TemperatureMin:   -12,
		PrecipitationSum: 480,
		RadiationSum:     4200,
	}
	soilProfile := &soil.Profile{TextureClass: "loam"}
	idx := &indices.Result{
		GDD: &indices.GDDResult{Total: 1850},
		GTK: &indices.GTKResult{Value: 1.4},
		SPI: &indices.SPIResult{Latest: -0.3},
		LAI: &indices.LAIResult{LAI: 3.2},
	}

	features := PrepareRegionFeatures(summary, soilProfile, idx)

	require.NotNil(t, features.TemperatureAvg)
	assert.InDelta(t, 20, *features.TemperatureAvg, 1e-9)
	assert.InDelta(t, -12, *features.TemperatureMinWinter, 1e-9)
	assert.InDelta(t, 480, *features.PrecipitationAnnual, 1e-9)
	assert.InDelta(t, 4200, *features.RadiationSum, 1e-9)
	assert.Equal(t, "loam", features.SoilType)
	assert.InDelta(t, 1850, *features.GDDTotal, 1e-9)
	assert.InDelta(t, 1.4, *features.GTK, 1e-9)
	assert.InDelta(t, -0.3, *features.SPI, 1e-9)
	assert.InDelta(t, 3.2, *features.LAI, 1e-9)

	// GTK 1.4 infers saturated topsoil.
	require.NotNil(t, features.SoilMoisture)
	assert.InDelta(t, 0.8, *features.SoilMoisture, 1e-9)
}

func TestPrepareRegionFeaturesSkipsUnknownTexture(t *testing.T) {
	features := PrepareRegionFeatures(nil, &soil.Profile{TextureClass: "unknown"}, nil)
	assert.Empty(t, features.SoilType)
}

func TestInferSoilMoistureTiers(t *testing.T) {
	assert.InDelta(t, 0.8, inferSoilMoisture(1.4), 1e-9)
	assert.InDelta(t, 0.7, inferSoilMoisture(1.1), 1e-9)
	assert.InDelta(t, 0.6, inferSoilMoisture(0.8), 1e-9)
	assert.InDelta(t, 0.5, inferSoilMoisture(0.5), 1e-9)
}
