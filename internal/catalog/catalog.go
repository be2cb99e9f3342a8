package catalog

// CropProfile holds the agronomic reference parameters for a single crop.
// Profiles are static configuration: they are registered once at package
// init and never mutated at runtime, so the catalog is safe to share
// across concurrent evaluations.
type CropProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`

	// Meteorological parameters
	TOptMin      float64 `json:"t_opt_min"`      // optimal temperature range lower bound (deg C)
	TOptMax      float64 `json:"t_opt_max"`      // optimal temperature range upper bound (deg C)
	TBase        float64 `json:"t_base"`         // biological minimum (deg C)
	PrecipMin    float64 `json:"precip_min"`     // minimum precipitation (mm/year)
	PrecipOpt    float64 `json:"precip_opt"`     // optimal precipitation (mm/year)
	RadiationMin float64 `json:"radiation_min"`  // minimum radiation (MJ/m2/season)

	// Agro-hydrological parameters
	SoilMoistureMin float64  `json:"soil_moisture_min"` // minimum moisture reserve (fraction of field capacity)
	GTKOptMin       float64  `json:"gtk_opt_min"`       // optimal hydrothermal coefficient range
	GTKOptMax       float64  `json:"gtk_opt_max"`
	SoilTypePref    []string `json:"soil_type_pref"`   // preferred soil texture classes
	FrostTolerance  float64  `json:"frost_tolerance"`   // frost tolerance threshold (deg C)

	// Biometric parameters
	GDDRequirement float64 `json:"gdd_requirement"` // required growing-degree-day total
	LAIOptimal     float64 `json:"lai_optimal"`
	PlantDensity   float64 `json:"plant_density"`   // plants per m2
	GrowthDuration int     `json:"growth_duration"` // vegetation period (days)

	// Satellite index parameters
	NDVIThreshold float64 `json:"ndvi_threshold"` // NDVI threshold for healthy canopy
	SPITolerance  float64 `json:"spi_tolerance"`  // drought tolerance (SPI)
}

// PrefersSoil reports whether the given texture class is in the crop's
// preferred set.
func (p *CropProfile) PrefersSoil(textureClass string) bool {
	for _, pref := range p.SoilTypePref {
		if pref == textureClass {
			return true
		}
	}
	return false
}

// profiles is declared in declaration order; Order relies on it to keep
// ranking ties deterministic.
var profiles = []CropProfile{
	{
		ID:              "wheat",
		Name:            "Wheat",
		Category:        "cereal",
		TOptMin:         15,
		TOptMax:         25,
		TBase:           5,
		PrecipMin:       400,
		PrecipOpt:       600,
		RadiationMin:    4000,
		SoilMoistureMin: 0.6,
		GTKOptMin:       1.0,
		GTKOptMax:       1.5,
		SoilTypePref:    []string{"loam", "silt_loam", "clay_loam", "clay"},
		FrostTolerance:  -18,
		GDDRequirement:  1800,
		LAIOptimal:      5.5,
		PlantDensity:    450,
		GrowthDuration:  240,
		NDVIThreshold:   0.65,
		SPITolerance:    -1.0,
	},
	{
		ID:              "corn",
		Name:            "Corn",
		Category:        "cereal",
		TOptMin:         20,
		TOptMax:         30,
		TBase:           10,
		PrecipMin:       500,
		PrecipOpt:       700,
		RadiationMin:    5000,
		SoilMoistureMin: 0.7,
		GTKOptMin:       1.2,
		GTKOptMax:       1.8,
		SoilTypePref:    []string{"loam", "silt_loam", "sandy_loam"},
		FrostTolerance:  0,
		GDDRequirement:  2700,
		LAIOptimal:      6.0,
		PlantDensity:    7,
		GrowthDuration:  150,
		NDVIThreshold:   0.75,
		SPITolerance:    -0.5,
	},
	{
		ID:              "sunflower",
		Name:            "Sunflower",
		Category:        "oilseed",
		TOptMin:         20,
		TOptMax:         27,
		TBase:           8,
		PrecipMin:       400,
		PrecipOpt:       550,
		RadiationMin:    4500,
		SoilMoistureMin: 0.5,
		GTKOptMin:       0.8,
		GTKOptMax:       1.3,
		SoilTypePref:    []string{"loam", "sandy_loam", "clay_loam"},
		FrostTolerance:  -5,
		GDDRequirement:  2100,
		LAIOptimal:      4.5,
		PlantDensity:    6,
		GrowthDuration:  120,
		NDVIThreshold:   0.70,
		SPITolerance:    -1.2,
	},
	{
		ID:              "soybean",
		Name:            "Soybean",
		Category:        "legume",
		TOptMin:         20,
		TOptMax:         30,
		TBase:           10,
		PrecipMin:       500,
		PrecipOpt:       650,
		RadiationMin:    4800,
		SoilMoistureMin: 0.65,
		GTKOptMin:       1.1,
		GTKOptMax:       1.6,
		SoilTypePref:    []string{"loam", "silt_loam", "sandy_loam"},
		FrostTolerance:  0,
		GDDRequirement:  2500,
		LAIOptimal:      5.0,
		PlantDensity:    50,
		GrowthDuration:  130,
		NDVIThreshold:   0.72,
		SPITolerance:    -0.8,
	},
	{
		ID:              "barley",
		Name:            "Barley",
		Category:        "cereal",
		TOptMin:         15,
		TOptMax:         22,
		TBase:           5,
		PrecipMin:       350,
		PrecipOpt:       550,
		RadiationMin:    3800,
		SoilMoistureMin: 0.55,
		GTKOptMin:       0.9,
		GTKOptMax:       1.4,
		SoilTypePref:    []string{"loam", "sandy_loam", "silt_loam"},
		FrostTolerance:  -20,
		GDDRequirement:  1500,
		LAIOptimal:      5.0,
		PlantDensity:    400,
		GrowthDuration:  90,
		NDVIThreshold:   0.63,
		SPITolerance:    -1.3,
	},
	{
		ID:              "rapeseed",
		Name:            "Rapeseed",
		Category:        "oilseed",
		TOptMin:         15,
		TOptMax:         25,
		TBase:           5,
		PrecipMin:       450,
		PrecipOpt:       650,
		RadiationMin:    4200,
		SoilMoistureMin: 0.65,
		GTKOptMin:       1.1,
		GTKOptMax:       1.6,
		SoilTypePref:    []string{"loam", "clay_loam", "silt_loam"},
		FrostTolerance:  -15,
		GDDRequirement:  2000,
		LAIOptimal:      5.5,
		PlantDensity:    80,
		GrowthDuration:  300,
		NDVIThreshold:   0.68,
		SPITolerance:    -0.9,
	},
	{
		ID:              "potato",
		Name:            "Potato",
		Category:        "row_crop",
		TOptMin:         15,
		TOptMax:         20,
		TBase:           7,
		PrecipMin:       500,
		PrecipOpt:       700,
		RadiationMin:    3500,
		SoilMoistureMin: 0.7,
		GTKOptMin:       1.3,
		GTKOptMax:       1.8,
		SoilTypePref:    []string{"sandy_loam", "loam"},
		FrostTolerance:  -2,
		GDDRequirement:  1400,
		LAIOptimal:      4.0,
		PlantDensity:    5,
		GrowthDuration:  120,
		NDVIThreshold:   0.65,
		SPITolerance:    -0.7,
	},
	{
		ID:              "sugar_beet",
		Name:            "Sugar beet",
		Category:        "row_crop",
		TOptMin:         18,
		TOptMax:         25,
		TBase:           10,
		PrecipMin:       500,
		PrecipOpt:       650,
		RadiationMin:    4500,
		SoilMoistureMin: 0.7,
		GTKOptMin:       1.2,
		GTKOptMax:       1.7,
		SoilTypePref:    []string{"loam", "silt_loam", "clay_loam"},
		FrostTolerance:  -3,
		GDDRequirement:  2000,
		LAIOptimal:      5.0,
		PlantDensity:    10,
		GrowthDuration:  180,
		NDVIThreshold:   0.70,
		SPITolerance:    -0.6,
	},
}

var byID = func() map[string]*CropProfile {
	m := make(map[string]*CropProfile, len(profiles))
	for i := range profiles {
		m[profiles[i].ID] = &profiles[i]
	}
	return m
}()

// Get returns the profile for the given crop identifier.
func Get(id string) (*CropProfile, bool) {
	p, ok := byID[id]
	return p, ok
}

// Order returns crop identifiers in catalog declaration order. Rankings
// iterate this sequence so that equal scores sort deterministically.
func Order() []string {
	ids := make([]string, len(profiles))
	for i := range profiles {
		ids[i] = profiles[i].ID
	}
	return ids
}

// All returns every profile in declaration order.
func All() []CropProfile {
	out := make([]CropProfile, len(profiles))
	copy(out, profiles)
	return out
}

// Len returns the number of crops in the catalog.
func Len() int {
	return len(profiles)
}
