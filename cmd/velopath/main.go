package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/ondravit/VeloPath/pkg/engine"
	"github.com/ondravit/VeloPath/pkg/gpx"
	"github.com/ondravit/VeloPath/pkg/logger"
	"github.com/ondravit/VeloPath/pkg/roadparser"
	"github.com/ondravit/VeloPath/pkg/usecases"
	"github.com/ondravit/VeloPath/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	roadsFile   = flag.String("roads", "./data/roads.geojson", "road network file (.geojson, .osm, .osm.pbf, optionally .bz2)")
	configDir   = flag.String("config", "./data", "directory containing config.yaml")
	waypoints   = flag.String("waypoints", "", "route waypoints as lat,lon;lat,lon;...")
	quality     = flag.Float64("quality", 0.5, "quality balance, 0 = shortest, 1 = best surface")
	algorithm   = flag.String("algorithm", "", "dijkstra or astar, overrides routing.algorithm")
	gpxFile     = flag.String("gpx", "", "write the route as a gpx track to this file")
	batchFile   = flag.String("batch", "", "file with one waypoint list per line, routed concurrently")
	batchLimit  = flag.Int("batch_workers", 8, "max concurrent routes in batch mode")
	inspectRoad = flag.String("inspect", "", "print the road nearest to lat,lon")
	gpxIn       = flag.String("waypoints_gpx", "", "take waypoints from the track of this gpx file instead of -waypoints")
	gpxInPoints = flag.Int("waypoints_gpx_points", 10, "max waypoints sampled from -waypoints_gpx")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(*configDir); err != nil {
		logger.Warn("config not loaded, using defaults", zap.Error(err))
	}
	cfg := engine.ConfigFromViper()
	if *algorithm != "" {
		cfg.Algorithm = *algorithm
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	segments, err := roadparser.NewRoadParser(cfg.ConditionProperty, logger).ParseFile(ctx, *roadsFile)
	if err != nil {
		logger.Fatal("failed to load roads", zap.String("file", *roadsFile), zap.Error(err))
	}

	routingEngine := engine.NewEngine(segments, cfg, logger)
	routingService, err := usecases.NewRoutingService(logger, routingEngine, cfg.CacheSize)
	if err != nil {
		logger.Fatal("failed to create routing service", zap.Error(err))
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	switch {
	case *inspectRoad != "":
		points, err := parseWaypoints(*inspectRoad)
		if err != nil || len(points) != 1 {
			logger.Fatal("invalid -inspect coordinate", zap.String("value", *inspectRoad), zap.Error(err))
		}
		info, ok := routingService.InspectRoad(points[0].Coordinate())
		if !ok {
			logger.Fatal("road network is empty")
		}
		if err := out.Encode(info); err != nil {
			logger.Fatal("failed to write result", zap.Error(err))
		}

	case *batchFile != "":
		if err := runBatch(ctx, routingService, *batchFile, *quality, *batchLimit, out, logger); err != nil {
			logger.Fatal("batch routing failed", zap.Error(err))
		}

	default:
		points, err := parseWaypoints(*waypoints)
		if err != nil {
			logger.Fatal("invalid -waypoints", zap.String("value", *waypoints), zap.Error(err))
		}
		if *gpxIn != "" {
			points, err = readGPXWaypoints(*gpxIn, *gpxInPoints)
			if err != nil {
				logger.Fatal("failed to read gpx waypoints", zap.String("file", *gpxIn), zap.Error(err))
			}
			logger.Info("waypoints sampled from gpx track", zap.String("file", *gpxIn), zap.Int("waypoints", len(points)))
		}
		result, err := routingService.RouteDetailed(ctx, usecases.RouteRequest{Waypoints: points, Quality: *quality})
		if err != nil {
			logger.Fatal("routing failed", zap.Error(err))
		}
		if !result.Found {
			logger.Warn("no route found", zap.String("waypoints", *waypoints), zap.Float64("quality", *quality))
		}
		if err := out.Encode(result); err != nil {
			logger.Fatal("failed to write result", zap.Error(err))
		}

		if *gpxFile != "" && result.Found {
			if err := writeGPX(*gpxFile, result); err != nil {
				logger.Fatal("failed to write gpx", zap.String("file", *gpxFile), zap.Error(err))
			}
			logger.Info("gpx track written", zap.String("file", *gpxFile), zap.Int("points", len(result.Coordinates)))
		}
	}
}

func writeGPX(path string, result *usecases.RouteResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gpx.WriteRoute(f, "VeloPathRoute", result.Coordinates)
}

// runBatch. routes every line of path with at most limit routes in flight, results keep the line order.
func runBatch(ctx context.Context, rs *usecases.RoutingService, path string, q float64, limit int,
	out *json.Encoder, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	requests, err := readBatch(f, q)
	if err != nil {
		return err
	}

	results := make([]*usecases.RouteResult, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, request := range requests {
		g.Go(func() error {
			result, err := rs.RouteDetailed(gctx, request)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	found := 0
	for _, r := range results {
		if r.Found {
			found++
		}
	}
	logger.Info("batch routed", zap.Int("routes", len(results)), zap.Int("found", found))
	return out.Encode(results)
}

// readBatch. one waypoint list per line, empty lines and lines starting with # are ignored.
func readBatch(r io.Reader, q float64) ([]usecases.RouteRequest, error) {
	requests := make([]usecases.RouteRequest, 0)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		points, err := parseWaypoints(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		requests = append(requests, usecases.RouteRequest{Waypoints: points, Quality: q})
	}
	return requests, scanner.Err()
}
