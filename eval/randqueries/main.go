package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ondravit/VeloPath/pkg/concurrent"
	da "github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/engine"
	"github.com/ondravit/VeloPath/pkg/engine/routing"
	log "github.com/ondravit/VeloPath/pkg/logger"
	"github.com/ondravit/VeloPath/pkg/roadparser"
	"github.com/ondravit/VeloPath/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	roadsFile  = flag.String("roads", "./data/roads.geojson", "road network file")
	configDir  = flag.String("config", "./data", "directory containing config.yaml")
	numQueries = flag.Int("n", 10000, "number of random queries")
	numWorkers = flag.Int("workers", 8, "number of concurrent workers")
	quality    = flag.Float64("quality", 0.5, "quality balance of the cost function")
	seed       = flag.Uint64("seed", 1, "random seed")
	outFile    = flag.String("out", "rand_queries_result.csv", "csv output")
)

type spParam struct {
	row int
	s   da.Index
	t   da.Index
}

type spResult struct {
	row                     int
	dijkstraCost, astarCost float64
	dijkstraSettled         int
	astarSettled            int
	dijkstraTime, astarTime time.Duration
	found                   bool
	err                     error
}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(*configDir); err != nil {
		logger.Warn("config not loaded, using defaults", zap.Error(err))
	}
	cfg := engine.ConfigFromViper()

	ctx := context.Background()
	segments, err := roadparser.NewRoadParser(cfg.ConditionProperty, logger).ParseFile(ctx, *roadsFile)
	if err != nil {
		panic(err)
	}
	re := engine.NewEngine(segments, cfg, logger)
	g := re.GetGraph()
	if g.IsEmpty() {
		logger.Fatal("road graph is empty", zap.String("roads", *roadsFile))
	}

	cf := re.NewCostFunction(*quality)
	dijkstra := routing.NewDijkstra(g, cf)
	astar := routing.NewAstar(g, cf)

	rng := rand.New(rand.NewSource(*seed))
	queries := make([]spParam, *numQueries)
	for i := range queries {
		queries[i] = spParam{
			row: i,
			s:   da.Index(rng.Intn(g.NumberOfVertices())),
			t:   da.Index(rng.Intn(g.NumberOfVertices())),
		}
	}

	calcSP := func(p spParam) spResult {
		res := spResult{row: p.row}

		before := time.Now()
		dp, err := dijkstra.ShortestPath(ctx, p.s, p.t)
		res.dijkstraTime = time.Since(before)
		if err != nil {
			res.err = err
			return res
		}

		before = time.Now()
		ap, err := astar.ShortestPath(ctx, p.s, p.t)
		res.astarTime = time.Since(before)
		if err != nil {
			res.err = err
			return res
		}

		res.found = !dp.IsEmpty()
		res.dijkstraCost, res.astarCost = dp.GetCost(), ap.GetCost()
		res.dijkstraSettled, res.astarSettled = dp.GetSettled(), ap.GetSettled()
		if (p.row+1)%1000 == 0 {
			logger.Sugar().Infof("done query %v", p.row+1)
		}
		return res
	}

	results := concurrent.Map(queries, *numWorkers, calcSP)

	f, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, "s,t,found,dijkstra_cost,astar_cost,dijkstra_settled,astar_settled,dijkstra_us,astar_us")
	mismatch, found := 0, 0
	settledRatio := 0.0
	for i, r := range results {
		if r.err != nil {
			logger.Error("query failed", zap.Int("row", r.row), zap.Error(r.err))
			continue
		}
		if r.found {
			found++
			settledRatio += float64(r.astarSettled) / float64(max(r.dijkstraSettled, 1))
		}
		if math.Abs(r.dijkstraCost-r.astarCost) > 1e-6 {
			mismatch++
			logger.Error("dijkstra and a* disagree",
				zap.Int("row", r.row),
				zap.Float64("dijkstra", r.dijkstraCost),
				zap.Float64("astar", r.astarCost),
			)
		}
		fmt.Fprintf(w, "%d,%d,%t,%f,%f,%d,%d,%d,%d\n", queries[i].s, queries[i].t, r.found,
			r.dijkstraCost, r.astarCost, r.dijkstraSettled, r.astarSettled,
			r.dijkstraTime.Microseconds(), r.astarTime.Microseconds())
	}

	logger.Info("random queries done",
		zap.Int("queries", len(results)),
		zap.Int("found", found),
		zap.Int("cost_mismatch", mismatch),
		zap.Float64("avg_settled_ratio_astar_dijkstra", settledRatio/float64(max(found, 1))),
	)
}
