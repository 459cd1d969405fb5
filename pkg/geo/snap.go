package geo

import (
	"math"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/util"
)

const minCosLat = 1e-9

// SnapSteps. grid step in degrees for each axis so that one step is toleranceMeters long at c.
// the longitude step grows with 1/cos(lat) (meridian convergence); near the poles it is clamped to the latitude step.
func SnapSteps(c Coordinate, toleranceMeters float64) (latStep, lonStep float64) {
	latStep = toleranceMeters / pkg.METERS_PER_DEGREE_LAT

	cosLat := math.Cos(util.DegreeToRadians(c.Lat))
	if math.Abs(cosLat) < minCosLat {
		return latStep, latStep
	}

	lonStep = toleranceMeters / (pkg.METERS_PER_DEGREE_LAT * cosLat)
	return latStep, lonStep
}

// Snap. rounds each axis of c to the nearest multiple of its grid step.
// a tolerance <= 0 returns c unchanged.
func Snap(c Coordinate, toleranceMeters float64) Coordinate {
	if toleranceMeters <= 0 {
		return c
	}
	latStep, lonStep := SnapSteps(c, toleranceMeters)
	return NewCoordinate(snapValue(c.Lat, latStep), snapValue(c.Lon, lonStep))
}

// SnapCells. integer grid cell of c, the same cell Snap rounds c into.
func SnapCells(c Coordinate, toleranceMeters float64) (int64, int64) {
	latStep, lonStep := SnapSteps(c, toleranceMeters)
	return int64(math.Round(c.Lat / latStep)), int64(math.Round(c.Lon / lonStep))
}

func snapValue(value, step float64) float64 {
	return math.Round(value/step) * step
}

// SnapKeyFor. fixed precision grid cell of c, truncated toward zero. precision 1e5 is ~1 meter.
func SnapKeyFor(c Coordinate, precision float64) (int64, int64) {
	return int64(c.Lat * precision), int64(c.Lon * precision)
}
