package geo

import (
	"math"

	"github.com/ondravit/VeloPath/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// DistanceTo. haversine distance to other in meters
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return CalculateHaversineDistance(c.Lat, c.Lon, other.Lat, other.Lon) * 1000
}

const (
	earthRadiusKM = 6371.0

	// length of one degree of latitude on the haversine sphere
	MetersPerDegreeSphere = earthRadiusKM * 1000 * math.Pi / 180.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	if a > 1 {
		a = 1
	}
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// HaversineMeters. haversine distance between a and b in meters
func HaversineMeters(a, b Coordinate) float64 {
	return a.DistanceTo(b)
}

// PolylineLength. sum of haversine distances between consecutive coordinates, in meters
func PolylineLength(coords []Coordinate) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += coords[i-1].DistanceTo(coords[i])
	}
	return length
}
