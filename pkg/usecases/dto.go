package usecases

import (
	"github.com/ondravit/VeloPath/pkg/geo"
)

type Waypoint struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (w Waypoint) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(w.Lat, w.Lon)
}

type RouteRequest struct {
	Waypoints []Waypoint `json:"waypoints" validate:"required,min=2,dive"`
	Quality   float64    `json:"quality" validate:"gte=0,lte=1"`
}

type LegSummary struct {
	From     geo.Coordinate `json:"from"`
	To       geo.Coordinate `json:"to"`
	Distance float64        `json:"distance_m"`
	Cost     float64        `json:"cost"`
	Points   int            `json:"points"`
}

type SnappedWaypoint struct {
	Input   geo.Coordinate `json:"input"`
	Snapped geo.Coordinate `json:"snapped"`
	Offset  float64        `json:"offset_m"` // distance between input and snapped
}

type RouteResult struct {
	Found       bool              `json:"found"`
	Coordinates []geo.Coordinate  `json:"coordinates"`
	Polyline    string            `json:"polyline"`
	Distance    float64           `json:"distance_m"`
	Cost        float64           `json:"cost"`
	Legs        []LegSummary      `json:"legs"`
	Waypoints   []SnappedWaypoint `json:"waypoints"`
}

type RoadInfo struct {
	SegmentID  int64          `json:"segment_id"`
	Condition  string         `json:"condition"`
	Projection geo.Coordinate `json:"projection"`
	Distance   float64        `json:"distance_m"`
	Length     float64        `json:"edge_length_m"`
}
