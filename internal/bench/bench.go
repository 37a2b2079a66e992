// Package bench measures how fast a point table answers nearest and range queries over
// the unit square.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fastrand"
	"golang.org/x/sync/errgroup"

	"github.com/go-sod/kdst/internal/dataset"
	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/internal/index"
	"github.com/go-sod/kdst/internal/logging"
)

type Result struct {
	Ops       int           `json:"ops"`
	Elapsed   time.Duration `json:"elapsed"`
	PerSecond float64       `json:"perSecond"`
	// Hits counts found neighbors for nearest and matched points for range.
	Hits int `json:"hits"`
}

type Report struct {
	Alg     index.AlgType `json:"alg"`
	Size    int           `json:"size"`
	Height  int           `json:"height"`
	Build   Result        `json:"build"`
	Nearest Result        `json:"nearest"`
	Range   Result        `json:"range"`
}

type heighter interface {
	Height() int
}

func newResult(ops, hits int, elapsed time.Duration) Result {
	r := Result{Ops: ops, Elapsed: elapsed, Hits: hits}
	if elapsed > 0 {
		r.PerSecond = float64(ops) / elapsed.Seconds()
	}
	return r
}

// Points returns the configured dataset, or n random points in the unit square.
func Points(cfg Config) ([]geom.Point, error) {
	if cfg.Dataset != "" {
		return dataset.ReadFile(cfg.Dataset)
	}
	var rng fastrand.RNG
	rng.Seed(cfg.Seed)
	points := make([]geom.Point, cfg.Size)
	for i := range points {
		points[i] = geom.NewPoint(unit(&rng), unit(&rng))
	}
	return points, nil
}

func unit(rng *fastrand.RNG) float64 {
	return float64(rng.Uint32()) / (1 << 32)
}

// Run builds the index and queries it from cfg.Workers goroutines. Queries only read the
// table, so the workers share it without locking.
func Run(ctx context.Context, cfg Config) (Report, error) {
	logger := logging.FromContext(ctx)
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	points, err := Points(cfg)
	if err != nil {
		return Report{}, fmt.Errorf("bench points: %w", err)
	}
	table, err := index.New[int](cfg.Alg)
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	if err := dataset.Load(table, points); err != nil {
		return Report{}, fmt.Errorf("bench build: %w", err)
	}
	report := Report{
		Alg:   cfg.Alg,
		Size:  table.Len(),
		Build: newResult(len(points), table.Len(), time.Since(start)),
	}
	if h, ok := table.(heighter); ok {
		report.Height = h.Height()
	}
	logger.Infof("built %s index of %d points in %v", cfg.Alg, report.Size, report.Build.Elapsed)

	report.Nearest, err = runWorkers(ctx, cfg, cfg.NearestOps, func(rng *fastrand.RNG) (int, error) {
		_, ok, err := table.Nearest(geom.NewPoint(unit(rng), unit(rng)))
		if ok {
			return 1, err
		}
		return 0, err
	})
	if err != nil {
		return Report{}, fmt.Errorf("bench nearest: %w", err)
	}

	side := cfg.RangeSide
	report.Range, err = runWorkers(ctx, cfg, cfg.RangeOps, func(rng *fastrand.RNG) (int, error) {
		x, y := unit(rng)*(1-side), unit(rng)*(1-side)
		found, err := table.Range(geom.NewRect(x, y, x+side, y+side))
		return len(found), err
	})
	if err != nil {
		return Report{}, fmt.Errorf("bench range: %w", err)
	}
	return report, nil
}

func runWorkers(ctx context.Context, cfg Config, ops int, query func(rng *fastrand.RNG) (int, error)) (Result, error) {
	hits := make([]int, cfg.Workers)
	start := time.Now()
	errGrp, grpCtx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		n := ops / cfg.Workers
		if w < ops%cfg.Workers {
			n++
		}
		errGrp.Go(func() error {
			var rng fastrand.RNG
			rng.Seed(cfg.Seed + uint32(w) + 1)
			for i := 0; i < n; i++ {
				if i%1024 == 0 {
					if err := grpCtx.Err(); err != nil {
						return err
					}
				}
				found, err := query(&rng)
				if err != nil {
					return err
				}
				hits[w] += found
			}
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		return Result{}, err
	}
	total := 0
	for _, h := range hits {
		total += h
	}
	return newResult(ops, total, time.Since(start)), nil
}
