package datastructure

import (
	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/geo"
)

// SnapKey is the grid cell of a coordinate, used to merge nearly coincident polyline points into one vertex.
type SnapKey struct {
	lat int64
	lon int64
}

// NewSnapKey. grid cell of c for a merge tolerance in meters. tolerance <= 0 falls back
// to a fixed 1e-5 degree grid (~1 meter) that truncates instead of rounding.
func NewSnapKey(c geo.Coordinate, toleranceMeters float64) SnapKey {
	if toleranceMeters <= 0 {
		lat, lon := geo.SnapKeyFor(c, pkg.DEFAULT_SNAP_PRECISION)
		return SnapKey{lat: lat, lon: lon}
	}
	lat, lon := geo.SnapCells(c, toleranceMeters)
	return SnapKey{lat: lat, lon: lon}
}
