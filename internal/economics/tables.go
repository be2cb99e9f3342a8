package economics

// CostBreakdown is the per-hectare production cost table for one crop,
// in rubles per hectare.
type CostBreakdown struct {
	Seeds       float64 `json:"seeds"`
	Fertilizers float64 `json:"fertilizers"`
	Fuel        float64 `json:"fuel"`
	Pesticides  float64 `json:"pesticides"`
	Machinery   float64 `json:"machinery"`
	Labor       float64 `json:"labor"`
	Other       float64 `json:"other"`
}

// Total sums all cost categories.
func (c CostBreakdown) Total() float64 {
	return c.Seeds + c.Fertilizers + c.Fuel + c.Pesticides + c.Machinery + c.Labor + c.Other
}

// regionalCosts, marketPrices, and averageYields are static reference
// tables (2024 figures). Like the crop catalog they are loaded once and
// never mutated.
var regionalCosts = map[string]CostBreakdown{
	"wheat":      {Seeds: 3500, Fertilizers: 8000, Fuel: 4500, Pesticides: 2000, Machinery: 3000, Labor: 2500, Other: 1500},
	"corn":       {Seeds: 6000, Fertilizers: 12000, Fuel: 5500, Pesticides: 3000, Machinery: 4000, Labor: 3000, Other: 2000},
	"sunflower":  {Seeds: 4500, Fertilizers: 7000, Fuel: 5000, Pesticides: 2500, Machinery: 3500, Labor: 2500, Other: 1500},
	"soybean":    {Seeds: 5000, Fertilizers: 6000, Fuel: 5000, Pesticides: 3500, Machinery: 3500, Labor: 2500, Other: 1500},
	"barley":     {Seeds: 3000, Fertilizers: 7000, Fuel: 4000, Pesticides: 1800, Machinery: 2800, Labor: 2200, Other: 1200},
	"rapeseed":   {Seeds: 3500, Fertilizers: 10000, Fuel: 5500, Pesticides: 4000, Machinery: 3800, Labor: 2800, Other: 1800},
	"potato":     {Seeds: 25000, Fertilizers: 15000, Fuel: 8000, Pesticides: 5000, Machinery: 6000, Labor: 8000, Other: 3000},
	"sugar_beet": {Seeds: 8000, Fertilizers: 12000, Fuel: 7000, Pesticides: 4500, Machinery: 5000, Labor: 6000, Other: 2500},
}

// marketPrices holds average farm-gate prices in rubles per ton.
var marketPrices = map[string]float64{
	"wheat":      15000,
	"corn":       14000,
	"sunflower":  30000,
	"soybean":    35000,
	"barley":     13000,
	"rapeseed":   32000,
	"potato":     20000,
	"sugar_beet": 3500,
}

// averageYields holds national average yields in centners per hectare.
var averageYields = map[string]float64{
	"wheat":      35,
	"corn":       55,
	"sunflower":  25,
	"soybean":    20,
	"barley":     32,
	"rapeseed":   28,
	"potato":     250,
	"sugar_beet": 450,
}

// Costs returns the cost table for a crop.
func Costs(cropID string) (CostBreakdown, bool) {
	c, ok := regionalCosts[cropID]
	return c, ok
}

// Price returns the market price per ton for a crop.
func Price(cropID string) (float64, bool) {
	p, ok := marketPrices[cropID]
	return p, ok
}

// BaseYield returns the average yield (centner/ha) for a crop.
func BaseYield(cropID string) (float64, bool) {
	y, ok := averageYields[cropID]
	return y, ok
}
