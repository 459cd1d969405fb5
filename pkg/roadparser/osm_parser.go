package roadparser

import (
	"context"
	"fmt"
	"io"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

var (
	// https://wiki.openstreetmap.org/wiki/Key:highway
	// roads a bicycle may use. motorways and trunks are left out.
	acceptedHighway = map[string]struct{}{
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"unclassified":   {},
		"residential":    {},
		"living_street":  {},
		"service":        {},
		"track":          {},
		"road":           {},
		"cycleway":       {},
		"path":           {},
	}
)

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if _, ok := acceptedHighway[highway]; !ok {
		return false
	}
	return way.Tags.Find("bicycle") != "no"
}

type osmWay struct {
	id        int64
	name      string
	nodes     []int64
	condition pkg.RoadCondition
}

func newScanner(ctx context.Context, r io.Reader, pbf bool) osm.Scanner {
	if pbf {
		return osmpbf.New(ctx, r, 1)
	}
	return osmxml.New(ctx, r)
}

// ParseOSM. two passes over the file: ways first (to know which nodes are needed), then node coordinates.
// condition comes from the smoothness tag.
func (p *RoadParser) ParseOSM(ctx context.Context, open func() (io.ReadCloser, error), pbf bool) ([]datastructure.RoadSegment, error) {
	ways := make([]osmWay, 0)
	wayNodes := make(map[int64]geo.Coordinate)

	err := scanFile(ctx, open, pbf, func(o osm.Object) {
		way, ok := o.(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			return
		}
		if (len(ways)+1)%100000 == 0 {
			p.log.Sugar().Infof("processing openstreetmap ways: %d...", len(ways)+1)
		}

		w := osmWay{
			id:        int64(way.ID),
			name:      way.Tags.Find("name"),
			nodes:     make([]int64, 0, len(way.Nodes)),
			condition: pkg.GetSmoothnessCondition(way.Tags.Find("smoothness")),
		}
		for _, n := range way.Nodes {
			w.nodes = append(w.nodes, int64(n.ID))
			wayNodes[int64(n.ID)] = geo.Coordinate{}
		}
		ways = append(ways, w)
	})
	if err != nil {
		return nil, err
	}

	found := make(map[int64]struct{}, len(wayNodes))
	err = scanFile(ctx, open, pbf, func(o osm.Object) {
		node, ok := o.(*osm.Node)
		if !ok {
			return
		}
		if _, needed := wayNodes[int64(node.ID)]; needed {
			wayNodes[int64(node.ID)] = geo.NewCoordinate(node.Lat, node.Lon)
			found[int64(node.ID)] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}

	segments := make([]datastructure.RoadSegment, 0, len(ways))
	missing := 0
	for _, w := range ways {
		coords := make([]geo.Coordinate, 0, len(w.nodes))
		for _, id := range w.nodes {
			if _, ok := found[id]; !ok {
				// node outside of the extract
				missing++
				continue
			}
			coords = append(coords, wayNodes[id])
		}
		segments = append(segments, datastructure.NewRoadSegment(w.id, w.name, coords, w.condition))
	}

	p.log.Info("openstreetmap roads loaded",
		zap.Int("ways", len(ways)),
		zap.Int("nodes", len(found)),
		zap.Int("missing_nodes", missing),
	)
	return segments, nil
}

func scanFile(ctx context.Context, open func() (io.ReadCloser, error), pbf bool, handle func(o osm.Object)) error {
	f, err := open()
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := newScanner(ctx, f, pbf)
	// must not be parallel
	defer scanner.Close()
	for scanner.Scan() {
		handle(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan openstreetmap file: %w", err)
	}
	return nil
}
