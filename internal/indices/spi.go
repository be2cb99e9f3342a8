package indices

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSPITimescale is the rolling-sum window (in periods) used when
// the caller does not request another timescale.
const DefaultSPITimescale = 3

const (
	spiMinPeriods  = 12 // minimum input periods
	spiMinNonZero  = 10 // minimum non-zero rolling sums for the gamma fit
	spiCDFClipLow  = 0.001
	spiCDFClipHigh = 0.999
)

// SPIResult holds standardized precipitation index values for a series.
type SPIResult struct {
	Values         []float64 `json:"spi_values"`
	Latest         float64   `json:"latest_spi"`
	Interpretation string    `json:"interpretation"`
	Timescale      int       `json:"timescale"`
}

// CalculateSPI computes the standardized precipitation index over a
// per-period precipitation series. The series is summed over a rolling
// window of `timescale` periods, a two-parameter gamma distribution
// (location fixed at zero, Thom approximation for shape and scale) is
// fitted to the non-zero sums, and the gamma CDF values are pushed
// through the standard normal quantile function. CDF values are clipped
// to [0.001, 0.999] so the quantile stays finite; any remaining NaN
// collapses to zero.
func CalculateSPI(precipitation []float64, timescale int) (*SPIResult, error) {
	if timescale < 1 {
		timescale = 1
	}
	if len(precipitation) < spiMinPeriods {
		return nil, fmt.Errorf("%w: SPI needs at least %d periods, got %d",
			ErrInsufficientData, spiMinPeriods, len(precipitation))
	}
	if timescale > len(precipitation) {
		return nil, fmt.Errorf("%w: SPI timescale %d exceeds the %d available periods",
			ErrInsufficientData, timescale, len(precipitation))
	}

	rolling := rollingSum(precipitation, timescale)

	nonZero := make([]float64, 0, len(rolling))
	for _, v := range rolling {
		if v > 0 {
			nonZero = append(nonZero, v)
		}
	}
	if len(nonZero) < spiMinNonZero {
		return nil, fmt.Errorf("%w: SPI needs at least %d non-zero rolling sums, got %d",
			ErrInsufficientData, spiMinNonZero, len(nonZero))
	}

	shape, scale := fitGamma(nonZero)
	gamma := distuv.Gamma{Alpha: shape, Beta: 1 / scale}

	values := make([]float64, len(rolling))
	for i, v := range rolling {
		cdf := gamma.CDF(v)
		if cdf < spiCDFClipLow {
			cdf = spiCDFClipLow
		} else if cdf > spiCDFClipHigh {
			cdf = spiCDFClipHigh
		}
		spi := distuv.UnitNormal.Quantile(cdf)
		if math.IsNaN(spi) {
			spi = 0
		}
		values[i] = spi
	}

	latest := values[len(values)-1]

	return &SPIResult{
		Values:         values,
		Latest:         latest,
		Interpretation: InterpretSPI(latest),
		Timescale:      timescale,
	}, nil
}

// rollingSum returns sums over a trailing window; the first window-1
// positions are dropped, matching a rolling sum with NaN rows removed.
func rollingSum(series []float64, window int) []float64 {
	if window <= 1 {
		out := make([]float64, len(series))
		copy(out, series)
		return out
	}

	out := make([]float64, 0, len(series)-window+1)
	var sum float64
	for i, v := range series {
		sum += v
		if i >= window {
			sum -= series[i-window]
		}
		if i >= window-1 {
			out = append(out, sum)
		}
	}
	return out
}

// fitGamma estimates shape and scale of a gamma distribution with the
// Thom (1958) maximum-likelihood approximation, the standard fit for
// SPI computation.
func fitGamma(samples []float64) (shape, scale float64) {
	n := float64(len(samples))

	var sum, logSum float64
	for _, v := range samples {
		sum += v
		logSum += math.Log(v)
	}
	mean := sum / n

	a := math.Log(mean) - logSum/n
	if a < 1e-9 {
		// Near-constant samples degenerate the estimator; a tiny A keeps
		// the fit finite and centers the CDF on the mean.
		a = 1e-9
	}

	shape = (1 + math.Sqrt(1+4*a/3)) / (4 * a)
	scale = mean / shape
	return shape, scale
}

// InterpretSPI maps an SPI value to its drought/wetness band.
func InterpretSPI(spi float64) string {
	switch {
	case spi >= 2.0:
		return "extremely wet"
	case spi >= 1.5:
		return "very wet"
	case spi >= 1.0:
		return "moderately wet"
	case spi >= -1.0:
		return "normal"
	case spi >= -1.5:
		return "moderate drought"
	case spi >= -2.0:
		return "severe drought"
	default:
		return "extreme drought"
	}
}
