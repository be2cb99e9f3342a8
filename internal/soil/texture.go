package soil

// ClassifyTexture assigns a simplified USDA texture class from clay,
// sand, and silt percentages. Zero inputs across the board classify as
// unknown rather than guessing.
func ClassifyTexture(clay, sand, silt float64) string {
	if clay == 0 && sand == 0 && silt == 0 {
		return "unknown"
	}

	switch {
	case clay >= 40:
		return "heavy_clay"
	case clay >= 35:
		return "clay"
	case clay >= 27:
		if sand >= 45 {
			return "sandy_clay_loam"
		}
		return "clay_loam"
	case sand >= 85:
		return "sand"
	case sand >= 70:
		if silt >= 15 {
			return "sandy_loam"
		}
		return "loamy_sand"
	case sand >= 52:
		return "sandy_loam"
	case silt >= 50:
		if clay >= 18 {
			return "silty_clay_loam"
		}
		return "silt_loam"
	case silt >= 80:
		return "silt"
	default:
		return "loam"
	}
}
