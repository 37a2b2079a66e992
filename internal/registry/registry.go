// Package registry guards a point table for concurrent use: one writer at a time, any
// number of readers when no write is in flight.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opencensus.io/stats"

	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/internal/index"
	"github.com/go-sod/kdst/internal/observability"
	"github.com/go-sod/kdst/pkg/container/symtab"
)

type ProvideFn func(ctx context.Context) (*Registry, error)

type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Item struct {
	Point geom.Point      `json:"point"`
	Value json.RawMessage `json:"value"`
}

type Neighbor struct {
	Query    geom.Point `json:"query"`
	Found    bool       `json:"found"`
	Point    geom.Point `json:"point"`
	// Distance saturates at math.MaxFloat64.
	Distance float64    `json:"distance"`
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func New(alg index.AlgType, opts ...Option) (*Registry, error) {
	table, err := index.New[Entry](alg)
	if err != nil {
		return nil, fmt.Errorf("unable create registry: %w", err)
	}
	r := &Registry{table: table, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type Registry struct {
	mtx   sync.RWMutex
	table symtab.Table[Entry]
	now   func() time.Time
}

func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.table.Len()
}

// Put stores every item or none of them. An overwritten point keeps its entry ID.
func (r *Registry) Put(ctx context.Context, items ...Item) error {
	for i := range items {
		if err := symtab.CheckPoint(items[i].Point); err != nil {
			return r.reject(ctx, fmt.Errorf("item %d: %w", i, err))
		}
		if len(items[i].Value) == 0 || string(items[i].Value) == "null" {
			return r.reject(ctx, fmt.Errorf("item %d: missing value: %w", i, symtab.ErrInvalidArgument))
		}
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	for _, item := range items {
		entry, ok, err := r.table.Get(item.Point)
		if err != nil {
			return r.reject(ctx, err)
		}
		if !ok {
			entry.ID = uuid.New()
		}
		entry.Value = item.Value
		entry.UpdatedAt = r.now()
		if err := r.table.Put(item.Point, entry); err != nil {
			return r.reject(ctx, err)
		}
	}
	stats.Record(ctx, observability.PutCount.M(int64(len(items))), observability.IndexSize.M(int64(r.table.Len())))
	return nil
}

// Load stores points valued by their position, as the text datasets are numbered.
func (r *Registry) Load(ctx context.Context, points []geom.Point) error {
	items := make([]Item, len(points))
	for i, p := range points {
		items[i] = Item{Point: p, Value: json.RawMessage(fmt.Sprintf("%d", i))}
	}
	return r.Put(ctx, items...)
}

func (r *Registry) Get(ctx context.Context, p geom.Point) (Entry, bool, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	entry, ok, err := r.table.Get(p)
	if err != nil {
		return Entry{}, false, r.reject(ctx, err)
	}
	return entry, ok, nil
}

func (r *Registry) Points() []geom.Point {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.table.Points()
}

func (r *Registry) Range(ctx context.Context, rect geom.Rect) ([]geom.Point, error) {
	defer observability.Since(ctx, observability.RangeLatency, time.Now())
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	points, err := r.table.Range(rect)
	if err != nil {
		return nil, r.reject(ctx, err)
	}
	return points, nil
}

func (r *Registry) Nearest(ctx context.Context, p geom.Point) (Neighbor, error) {
	defer observability.Since(ctx, observability.NearestLatency, time.Now())
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	nearest, ok, err := r.table.Nearest(p)
	if err != nil {
		return Neighbor{}, r.reject(ctx, err)
	}
	neighbor := Neighbor{Query: p, Found: ok}
	if ok {
		neighbor.Point = nearest
		neighbor.Distance = math.Min(p.DistanceTo(nearest), math.MaxFloat64)
	}
	return neighbor, nil
}

func (r *Registry) reject(ctx context.Context, err error) error {
	if errors.Is(err, symtab.ErrInvalidArgument) {
		stats.Record(ctx, observability.RejectCount.M(1))
	}
	return err
}
