// Package geospatial validates GeoJSON field boundaries and derives
// their areas and centroids.
package geospatial

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ParseBoundary parses a GeoJSON feature or bare geometry.
func ParseBoundary(data []byte) (orb.Geometry, error) {
	if feature, err := geojson.UnmarshalFeature(data); err == nil {
		if feature.Geometry == nil {
			return nil, errors.New("boundary feature has no geometry")
		}
		return feature.Geometry, nil
	}

	geometry, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	return geometry.Geometry(), nil
}

// AreaHectares returns the geodesic area of a geometry in hectares.
func AreaHectares(geometry orb.Geometry) float64 {
	return geo.Area(geometry) / 10000
}

// Centroid returns the area-weighted centroid of a geometry.
func Centroid(geometry orb.Geometry) orb.Point {
	centroid, _ := planar.CentroidArea(geometry)
	return centroid
}
