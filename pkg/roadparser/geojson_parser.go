package roadparser

import (
	"fmt"
	"io"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// ParseGeoJSON. every LineString and every line of a MultiLineString becomes one segment.
// the condition label is read from the configured feature property, features without geometry are skipped.
func (p *RoadParser) ParseGeoJSON(r io.Reader) ([]datastructure.RoadSegment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson feature collection: %w", err)
	}

	segments := make([]datastructure.RoadSegment, 0, len(fc.Features))
	skipped := 0
	conditions := make(map[pkg.RoadCondition]int)
	for i, feature := range fc.Features {
		if feature == nil || feature.Geometry == nil {
			skipped++
			continue
		}

		condition := pkg.GetRoadCondition(propertyString(feature.Properties, p.conditionProperty))
		name := propertyString(feature.Properties, "name")

		switch g := feature.Geometry.(type) {
		case orb.LineString:
			segments = append(segments, datastructure.NewRoadSegment(int64(len(segments)), name, lineCoordinates(g), condition))
			conditions[condition]++
		case orb.MultiLineString:
			for _, ls := range g {
				segments = append(segments, datastructure.NewRoadSegment(int64(len(segments)), name, lineCoordinates(ls), condition))
				conditions[condition]++
			}
		default:
			p.log.Warn("skipping geojson feature that is not a line",
				zap.Int("feature", i), zap.String("geometry", feature.Geometry.GeoJSONType()))
			skipped++
		}
	}

	fields := []zap.Field{
		zap.Int("features", len(fc.Features)),
		zap.Int("segments", len(segments)),
		zap.Int("skipped_features", skipped),
	}
	for _, c := range pkg.Conditions {
		fields = append(fields, zap.Int(c.String(), conditions[c]))
	}
	p.log.Info("road geojson loaded", fields...)
	return segments, nil
}

func lineCoordinates(ls orb.LineString) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(ls))
	for i, pt := range ls {
		coords[i] = geo.NewCoordinate(pt.Lat(), pt.Lon())
	}
	return coords
}

// propertyString. string value of key, "" when missing or not a string
func propertyString(props geojson.Properties, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}
