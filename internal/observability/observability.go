// Package observability declares the service measures and exposes them to Prometheus.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

type Config struct {
	Namespace string `envconfig:"KDST_METRICS_NAMESPACE" default:"kdst"`
}

var (
	PutCount       = stats.Int64("kdst/puts", "Points stored or overwritten", stats.UnitDimensionless)
	RejectCount    = stats.Int64("kdst/rejected", "Calls rejected with an invalid argument", stats.UnitDimensionless)
	IndexSize      = stats.Int64("kdst/size", "Distinct points in the index", stats.UnitDimensionless)
	RangeLatency   = stats.Float64("kdst/range_latency", "Range query latency", stats.UnitMilliseconds)
	NearestLatency = stats.Float64("kdst/nearest_latency", "Nearest query latency", stats.UnitMilliseconds)
)

var latencyBuckets = view.Distribution(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500)

var Views = []*view.View{
	{Name: "kdst/puts_total", Measure: PutCount, Aggregation: view.Sum()},
	{Name: "kdst/rejected_total", Measure: RejectCount, Aggregation: view.Count()},
	{Name: "kdst/size", Measure: IndexSize, Aggregation: view.LastValue()},
	{Name: "kdst/range_latency", Measure: RangeLatency, Aggregation: latencyBuckets},
	{Name: "kdst/nearest_latency", Measure: NearestLatency, Aggregation: latencyBuckets},
}

// NewHandler registers the views and returns the Prometheus scrape handler.
func NewHandler(cfg *Config) (http.Handler, error) {
	if err := view.Register(Views...); err != nil {
		return nil, fmt.Errorf("register views: %w", err)
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: cfg.Namespace})
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	view.RegisterExporter(exporter)
	return exporter, nil
}

// Since records the milliseconds elapsed from start into m.
func Since(ctx context.Context, m *stats.Float64Measure, start time.Time) {
	stats.Record(ctx, m.M(float64(time.Since(start))/float64(time.Millisecond)))
}
