package datastructure

import (
	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/geo"
)

// RoadSegment is one raw polyline of the road dataset. read-only input of the graph builder.
type RoadSegment struct {
	id          int64
	name        string
	coordinates []geo.Coordinate
	condition   pkg.RoadCondition
}

func NewRoadSegment(id int64, name string, coordinates []geo.Coordinate, condition pkg.RoadCondition) RoadSegment {
	return RoadSegment{
		id:          id,
		name:        name,
		coordinates: coordinates,
		condition:   condition,
	}
}

func (s RoadSegment) GetID() int64 {
	return s.id
}

func (s RoadSegment) GetName() string {
	return s.name
}

func (s RoadSegment) GetCoordinates() []geo.Coordinate {
	return s.coordinates
}

func (s RoadSegment) GetCondition() pkg.RoadCondition {
	return s.condition
}

func (s RoadSegment) NumberOfPoints() int {
	return len(s.coordinates)
}
