package roadparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"go.uber.org/zap"
)

// RoadParser loads road segments from geojson (the road survey export) or openstreetmap files.
type RoadParser struct {
	conditionProperty string
	log               *zap.Logger
}

func NewRoadParser(conditionProperty string, log *zap.Logger) *RoadParser {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoadParser{
		conditionProperty: conditionProperty,
		log:               log,
	}
}

// ParseFile. format is picked from the extension: .geojson/.json, .osm (xml) or .osm.pbf,
// each optionally bzip2 compressed (.bz2), except pbf which is compressed already.
func (p *RoadParser) ParseFile(ctx context.Context, path string) ([]datastructure.RoadSegment, error) {
	name := strings.ToLower(path)
	compressed := strings.HasSuffix(name, ".bz2")
	name = strings.TrimSuffix(name, ".bz2")

	open := func() (io.ReadCloser, error) {
		return openFile(path, compressed)
	}

	switch {
	case strings.HasSuffix(name, ".geojson"), strings.HasSuffix(name, ".json"):
		f, err := open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return p.ParseGeoJSON(f)
	case strings.HasSuffix(name, ".pbf"):
		if compressed {
			return nil, fmt.Errorf("bzip2 compressed pbf is not supported: %s", path)
		}
		return p.ParseOSM(ctx, open, true)
	case strings.HasSuffix(name, ".osm"):
		return p.ParseOSM(ctx, open, false)
	default:
		return nil, fmt.Errorf("unknown road file format: %s", path)
	}
}

type bz2ReadCloser struct {
	*bzip2.Reader
	f *os.File
}

func (b *bz2ReadCloser) Close() error {
	if err := b.Reader.Close(); err != nil {
		b.f.Close()
		return err
	}
	return b.f.Close()
}

func openFile(path string, compressed bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !compressed {
		return f, nil
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open bzip2 stream %s: %w", path, err)
	}
	return &bz2ReadCloser{Reader: bz, f: f}, nil
}
