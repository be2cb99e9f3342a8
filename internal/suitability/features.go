package suitability

// RegionFeatures is the aggregated view of a region the scorer consumes.
// Nil pointers and empty strings mean the upstream data source could not
// provide the value; every criterion has a defined fallback for that
// case, so an all-empty RegionFeatures is still scoreable.
type RegionFeatures struct {
	TemperatureAvg       *float64 `json:"temperature_avg,omitempty"`
	TemperatureMinWinter *float64 `json:"temperature_min_winter,omitempty"`
	PrecipitationAnnual  *float64 `json:"precipitation_annual,omitempty"`
	RadiationSum         *float64 `json:"radiation_sum,omitempty"`
	SoilType             string   `json:"soil_type,omitempty"`
	SoilMoisture         *float64 `json:"soil_moisture,omitempty"`
	GDDTotal             *float64 `json:"gdd,omitempty"`
	GTK                  *float64 `json:"gtk,omitempty"`
	SPI                  *float64 `json:"spi,omitempty"`
	LAI                  *float64 `json:"lai,omitempty"`
}

// Float64 is a convenience for building optional feature values.
func Float64(v float64) *float64 {
	return &v
}
