package indices

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGDDConstantSeries(t *testing.T) {
	series := make([]float64, 365)
	for i := range series {
		series[i] = 20
	}

	res := CalculateGDD(series, DefaultTBase, DefaultTUpper)

	assert.InDelta(t, 3650, res.Total, 1e-9)
	assert.Len(t, res.Daily, 365)
	assert.Len(t, res.Cumulative, 365)
	assert.InDelta(t, 10, res.Daily[0], 1e-9)
	assert.InDelta(t, res.Total, res.Cumulative[364], 1e-9)
}

func TestCalculateGDDClipsBelowBaseAndAboveUpper(t *testing.T) {
	res := CalculateGDD([]float64{5, 10, 35, -3}, DefaultTBase, DefaultTUpper)

	assert.Equal(t, []float64{0, 0, 20, 0}, res.Daily)
	assert.InDelta(t, 20, res.Total, 1e-9)
}

func TestCalculateGDDCumulativeIsMonotonic(t *testing.T) {
	res := CalculateGDD([]float64{12, 8, 25, 31, 4, 18}, DefaultTBase, DefaultTUpper)

	for i := 1; i < len(res.Cumulative); i++ {
		assert.GreaterOrEqual(t, res.Cumulative[i], res.Cumulative[i-1])
	}
	assert.GreaterOrEqual(t, res.Total, 0.0)
}

func TestActiveTemperatureSum(t *testing.T) {
	sum := ActiveTemperatureSum([]float64{15, 9, 12, 10})
	assert.InDelta(t, 7, sum, 1e-9)
}

func TestCalculateGTK(t *testing.T) {
	res, err := CalculateGTK(300, 2500)
	require.NoError(t, err)

	assert.InDelta(t, 1.2, res.Value, 1e-9)
	assert.Equal(t, "optimal moisture", res.Interpretation)
	assert.InDelta(t, 300, res.PrecipitationSum, 1e-9)
	assert.InDelta(t, 2500, res.TemperatureSum, 1e-9)
}

func TestCalculateGTKWithoutActiveTemperatures(t *testing.T) {
	res, err := CalculateGTK(300, 0)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestInterpretGTKBands(t *testing.T) {
	assert.Equal(t, "excess moisture", InterpretGTK(1.7))
	assert.Equal(t, "elevated moisture", InterpretGTK(1.3))
	assert.Equal(t, "optimal moisture", InterpretGTK(1.0))
	assert.Equal(t, "insufficient moisture", InterpretGTK(0.7))
	assert.Equal(t, "dry conditions", InterpretGTK(0.5))
	assert.Equal(t, "severe drought", InterpretGTK(0.3))
}

func TestCalculateSPITooFewPeriods(t *testing.T) {
	res, err := CalculateSPI([]float64{10, 20, 30}, DefaultSPITimescale)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateSPITimescaleLongerThanSeries(t *testing.T) {
	series := []float64{30, 45, 20, 60, 35, 50, 25, 40, 55, 30, 45, 65}

	var res *SPIResult
	var err error
	assert.NotPanics(t, func() {
		res, err = CalculateSPI(series, 14)
	})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateSPITooFewNonZeroSums(t *testing.T) {
	series := make([]float64, 14)
	series[0] = 5 // only the first two rolling sums are non-zero

	res, err := CalculateSPI(series, DefaultSPITimescale)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateSPIVariedSeries(t *testing.T) {
	series := []float64{30, 45, 20, 60, 35, 50, 25, 40, 55, 30, 45, 65, 20, 35, 50}

	res, err := CalculateSPI(series, DefaultSPITimescale)
	require.NoError(t, err)

	assert.Equal(t, DefaultSPITimescale, res.Timescale)
	assert.Len(t, res.Values, len(series)-DefaultSPITimescale+1)
	for _, v := range res.Values {
		assert.False(t, math.IsNaN(v))
		assert.GreaterOrEqual(t, v, -4.0)
		assert.LessOrEqual(t, v, 4.0)
	}
	assert.InDelta(t, res.Values[len(res.Values)-1], res.Latest, 1e-9)
	assert.NotEmpty(t, res.Interpretation)
}

func TestCalculateSPINearMeanIsNearZero(t *testing.T) {
	// A symmetric series whose last window sits at the sample mean should
	// standardize close to zero.
	series := []float64{40, 50, 60, 40, 50, 60, 40, 50, 60, 40, 50, 60, 40, 50, 60}

	res, err := CalculateSPI(series, DefaultSPITimescale)
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Latest, 0.5)
}

func TestInterpretSPIBands(t *testing.T) {
	assert.Equal(t, "extremely wet", InterpretSPI(2.1))
	assert.Equal(t, "very wet", InterpretSPI(1.5))
	assert.Equal(t, "moderately wet", InterpretSPI(1.0))
	assert.Equal(t, "normal", InterpretSPI(0))
	assert.Equal(t, "moderate drought", InterpretSPI(-1.2))
	assert.Equal(t, "severe drought", InterpretSPI(-1.8))
	assert.Equal(t, "extreme drought", InterpretSPI(-2.5))
}

func TestEstimateLAIFromNDVI(t *testing.T) {
	// Values above the NDVI ceiling clip to 0.68 first.
	expected := -math.Log(0.01/0.59) / 0.91
	assert.InDelta(t, expected, EstimateLAIFromNDVI(0.69), 1e-9)

	// Bare soil maps to zero leaf area.
	assert.InDelta(t, 0, EstimateLAIFromNDVI(-0.5), 1e-9)

	mid := EstimateLAIFromNDVI(0.5)
	assert.Greater(t, mid, 0.0)
	assert.LessOrEqual(t, mid, 8.0)
}

func TestFPARFromLAI(t *testing.T) {
	assert.InDelta(t, 0, FPARFromLAI(0), 1e-9)
	assert.InDelta(t, 1-math.Exp(-1.5), FPARFromLAI(3), 1e-9)
}

func TestCalculateLAI(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	obs := []NDVIObservation{
		{Date: base, NDVI: 0.4},
		{Date: base.AddDate(0, 0, 10), NDVI: 0.5},
		{Date: base.AddDate(0, 0, 20), NDVI: 0.6},
	}

	res, err := CalculateLAI(obs)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Samples)
	assert.InDelta(t, 0.5, res.NDVIMean, 1e-9)
	assert.InDelta(t, round2(EstimateLAIFromNDVI(0.5)), res.LAI, 1e-9)
	assert.Greater(t, res.FPAR, 0.0)
	assert.Less(t, res.FPAR, 1.0)
}

func TestCalculateLAIWithoutObservations(t *testing.T) {
	res, err := CalculateLAI(nil)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculatePartialInputs(t *testing.T) {
	// Temperature only: GDD and the GTK precondition exist, but no
	// precipitation means no GTK or SPI, and no NDVI means no LAI.
	res := Calculate(ClimateInputs{TemperatureAvg: []float64{15, 20, 25}}, nil)

	assert.NotNil(t, res.GDD)
	assert.Nil(t, res.GTK)
	assert.Nil(t, res.SPI)
	assert.Nil(t, res.LAI)
}

func TestCalculatePrefersExplicitPrecipitationSum(t *testing.T) {
	sum := 500.0
	res := Calculate(ClimateInputs{
		TemperatureAvg:   []float64{20, 22, 24},
		Precipitation:    []float64{1, 1, 1},
		PrecipitationSum: &sum,
	}, nil)

	require.NotNil(t, res.GTK)
	assert.InDelta(t, 500, res.GTK.PrecipitationSum, 1e-9)
}
