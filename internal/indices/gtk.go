package indices

import "fmt"

// GTKResult holds the Selyaninov hydrothermal coefficient for a season.
type GTKResult struct {
	Value            float64 `json:"gtk"`
	Interpretation   string  `json:"interpretation"`
	PrecipitationSum float64 `json:"precipitation_sum"`
	TemperatureSum   float64 `json:"temperature_sum"`
}

// CalculateGTK computes GTK = precipSum / (0.1 * activeTempSum), where
// activeTempSum is the sum of (T - 10) over days warmer than 10 deg C.
// A non-positive active-temperature sum means the growing season never
// started; that is reported as insufficient data, not an error of the
// caller's making.
func CalculateGTK(precipSum, activeTempSum float64) (*GTKResult, error) {
	if activeTempSum <= 0 {
		return nil, fmt.Errorf("%w: no active temperatures above 10 deg C", ErrInsufficientData)
	}

	gtk := precipSum / (0.1 * activeTempSum)

	return &GTKResult{
		Value:            round2(gtk),
		Interpretation:   InterpretGTK(gtk),
		PrecipitationSum: precipSum,
		TemperatureSum:   activeTempSum,
	}, nil
}

// InterpretGTK maps a hydrothermal coefficient to its moisture band.
func InterpretGTK(gtk float64) string {
	switch {
	case gtk > 1.6:
		return "excess moisture"
	case gtk >= 1.3:
		return "elevated moisture"
	case gtk >= 1.0:
		return "optimal moisture"
	case gtk >= 0.7:
		return "insufficient moisture"
	case gtk >= 0.5:
		return "dry conditions"
	default:
		return "severe drought"
	}
}
