package gpx

import (
	"fmt"
	"io"

	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/tkrajina/gpxgo/gpx"
)

const creator = "VeloPath"

// NewTrack. gpx document with one track holding one segment of coords
func NewTrack(name string, coords []geo.Coordinate) *gpx.GPX {
	points := make([]gpx.GPXPoint, 0, len(coords))
	for _, c := range coords {
		points = append(points, gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  c.Lat,
				Longitude: c.Lon,
			},
		})
	}

	return &gpx.GPX{
		Creator: creator,
		Name:    name,
		Tracks: []gpx.GPXTrack{
			{
				Name: name,
				Segments: []gpx.GPXTrackSegment{
					{Points: points},
				},
			},
		},
	}
}

// WriteRoute. writes coords as a gpx 1.1 track to w
func WriteRoute(w io.Writer, name string, coords []geo.Coordinate) error {
	xml, err := NewTrack(name, coords).ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("encode gpx: %w", err)
	}
	if _, err := w.Write(xml); err != nil {
		return fmt.Errorf("write gpx: %w", err)
	}
	return nil
}

// ReadTrack. points of every track segment of a gpx document, in order
func ReadTrack(r io.Reader) ([]geo.Coordinate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode gpx: %w", err)
	}

	coords := make([]geo.Coordinate, 0)
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				coords = append(coords, geo.NewCoordinate(p.Latitude, p.Longitude))
			}
		}
	}
	return coords, nil
}
