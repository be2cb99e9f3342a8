package indices

// Default thresholds for growing-degree-day accumulation.
const (
	DefaultTBase  = 10.0
	DefaultTUpper = 30.0
)

// GDDResult holds growing-degree-day accumulation over a daily series.
type GDDResult struct {
	Daily      []float64 `json:"daily_gdd"`
	Cumulative []float64 `json:"cumulative_gdd"`
	Total      float64   `json:"total_gdd"`
}

// CalculateGDD computes growing degree days for a daily mean-temperature
// series: each day contributes max(0, min(T - tBase, tUpper - tBase)).
// The output series have the same length as the input and the total is
// never negative.
func CalculateGDD(tAvg []float64, tBase, tUpper float64) *GDDResult {
	daily := make([]float64, len(tAvg))
	cumulative := make([]float64, len(tAvg))

	var sum float64
	for i, t := range tAvg {
		gdd := t - tBase
		if gdd < 0 {
			gdd = 0
		}
		if cap := tUpper - tBase; gdd > cap {
			gdd = cap
		}
		daily[i] = gdd
		sum += gdd
		cumulative[i] = sum
	}

	return &GDDResult{
		Daily:      daily,
		Cumulative: cumulative,
		Total:      sum,
	}
}

// ActiveTemperatureSum returns the sum of (T - 10) over days with mean
// temperature above 10 deg C, the denominator base of the Selyaninov
// hydrothermal coefficient.
func ActiveTemperatureSum(tAvg []float64) float64 {
	var sum float64
	for _, t := range tAvg {
		if t > 10 {
			sum += t - 10
		}
	}
	return sum
}
