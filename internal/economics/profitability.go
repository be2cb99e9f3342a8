package economics

import "math"

// Result holds the per-hectare economics of growing one crop at the
// forecast yield. Computed once per (crop, yield) pair; monetary values
// are rounded to whole rubles.
type Result struct {
	TotalCost            float64       `json:"total_cost"`
	Costs                CostBreakdown `json:"cost_breakdown"`
	Revenue              float64       `json:"revenue"`
	Profit               float64       `json:"profit"`
	ROIPercent           float64       `json:"roi_percent"`
	ProfitabilityPercent float64       `json:"profitability_percent"`
	BreakevenYield       float64       `json:"breakeven_yield_cwt_per_ha"`
	PricePerTon          float64       `json:"price_per_ton"`
	YieldTonsPerHa       float64       `json:"yield_tons_per_ha"`
}

// Calculate derives revenue, profit, ROI, profitability, and break-even
// yield for a crop at the forecast yield (centner/ha). Returns false
// when the crop is missing from the cost or price tables. Division by
// zero never occurs: zero cost yields ROI 0 and zero revenue yields
// profitability 0.
func Calculate(cropID string, yieldCwtPerHa float64) (*Result, bool) {
	costs, ok := Costs(cropID)
	if !ok {
		return nil, false
	}
	pricePerTon, ok := Price(cropID)
	if !ok {
		return nil, false
	}

	totalCost := costs.Total()

	yieldTons := yieldCwtPerHa / 10 // centner/ha -> t/ha
	revenue := yieldTons * pricePerTon
	profit := revenue - totalCost

	roi := 0.0
	if totalCost > 0 {
		roi = profit / totalCost * 100
	}

	profitability := 0.0
	if revenue > 0 {
		profitability = profit / revenue * 100
	}

	breakevenYield := 0.0
	if pricePerTon > 0 {
		breakevenYield = totalCost / pricePerTon * 10 // t/ha -> centner/ha
	}

	return &Result{
		TotalCost:            math.Round(totalCost),
		Costs:                costs,
		Revenue:              math.Round(revenue),
		Profit:               math.Round(profit),
		ROIPercent:           round1(roi),
		ProfitabilityPercent: round1(profitability),
		BreakevenYield:       round1(breakevenYield),
		PricePerTon:          pricePerTon,
		YieldTonsPerHa:       math.Round(yieldTons*100) / 100,
	}, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
