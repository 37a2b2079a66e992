package index

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/pkg/container/kdtree"
	"github.com/go-sod/kdst/pkg/container/pointst"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		alg     AlgType
		wantErr bool
	}{
		{name: "kd_tree", alg: AlgTypeKDTree},
		{name: "brute", alg: AlgTypeBrute},
		{name: "unknown", alg: "BALL_TREE", wantErr: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			table, err := New[int](test.alg)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, table.IsEmpty())
		})
	}
	kd, _ := New[int](AlgTypeKDTree)
	assert.IsType(t, &kdtree.Tree[int]{}, kd)
	brute, _ := New[int](AlgTypeBrute)
	assert.IsType(t, &pointst.Table[int]{}, brute)
}

// TestDifferential drives both implementations with the same operations and compares
// every answer.
func TestDifferential(t *testing.T) {
	datasets := []struct {
		name  string
		point func(rnd *rand.Rand) geom.Point
		n     int
	}{
		{
			name:  "uniform",
			point: func(rnd *rand.Rand) geom.Point { return geom.Point{X: rnd.Float64(), Y: rnd.Float64()} },
			n:     3000,
		},
		{
			name: "grid",
			point: func(rnd *rand.Rand) geom.Point {
				return geom.Point{X: float64(rnd.Intn(16)) / 8, Y: float64(rnd.Intn(16)) / 8}
			},
			n: 1000,
		},
		{
			name:  "vertical_line",
			point: func(rnd *rand.Rand) geom.Point { return geom.Point{X: 0.5, Y: rnd.Float64()} },
			n:     500,
		},
		{
			name: "clustered",
			point: func(rnd *rand.Rand) geom.Point {
				return geom.Point{X: 10 + rnd.NormFloat64(), Y: -10 + rnd.NormFloat64()*0.01}
			},
			n: 1000,
		},
		{
			// squared distances stay finite just below overflow
			name:  "huge",
			point: func(rnd *rand.Rand) geom.Point { return geom.Point{X: (rnd.Float64()*2 - 1) * 1e150, Y: (rnd.Float64()*2 - 1) * 1e150} },
			n:     500,
		},
		{
			// squared distances between distinct points overflow to +Inf
			name:  "overflow",
			point: func(rnd *rand.Rand) geom.Point { return geom.Point{X: (rnd.Float64()*2 - 1) * 1e200, Y: (rnd.Float64()*2 - 1) * 1e200} },
			n:     500,
		},
	}
	for _, dataset := range datasets {
		dataset := dataset
		t.Run(dataset.name, func(t *testing.T) {
			rnd := rand.New(rand.NewSource(42))
			kd, err := New[int](AlgTypeKDTree)
			require.NoError(t, err)
			brute, err := New[int](AlgTypeBrute)
			require.NoError(t, err)

			var inserted []geom.Point
			for i := 0; i < dataset.n; i++ {
				p := dataset.point(rnd)
				require.NoError(t, kd.Put(p, i))
				require.NoError(t, brute.Put(p, i))
				inserted = append(inserted, p)
			}
			require.Equal(t, brute.Len(), kd.Len())
			assert.ElementsMatch(t, brute.Points(), kd.Points())

			for _, p := range inserted {
				want, _, _ := brute.Get(p)
				got, ok, err := kd.Get(p)
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, want, got)
			}

			bounds, _ := brute.Range(geom.Universe())
			minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
			for _, p := range bounds {
				minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
				maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
			}
			w, h := maxX-minX, maxY-minY
			for i := 0; i < 300; i++ {
				x0, x1 := minX-0.1*w+rnd.Float64()*1.2*w, minX-0.1*w+rnd.Float64()*1.2*w
				y0, y1 := minY-0.1*h+rnd.Float64()*1.2*h, minY-0.1*h+rnd.Float64()*1.2*h
				r := geom.NewRect(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1))
				want, err := brute.Range(r)
				require.NoError(t, err)
				got, err := kd.Range(r)
				require.NoError(t, err)
				require.ElementsMatch(t, want, got, "range %s", r)

				q := geom.Point{X: minX - 0.1*w + rnd.Float64()*1.2*w, Y: minY - 0.1*h + rnd.Float64()*1.2*h}
				if i%10 == 0 {
					q = inserted[rnd.Intn(len(inserted))]
				}
				wantNearest, ok, err := brute.Nearest(q)
				require.NoError(t, err)
				require.True(t, ok)
				gotNearest, ok, err := kd.Nearest(q)
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, q.DistanceSquaredTo(wantNearest), q.DistanceSquaredTo(gotNearest), "nearest to %s", q)
				found, err := kd.Contains(gotNearest)
				require.NoError(t, err)
				require.True(t, found)
			}
		})
	}
}

func TestNearest_LargeCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		stored []geom.Point
		query  geom.Point
	}{
		{name: "single", stored: []geom.Point{{X: 1e200, Y: 1e200}}, query: geom.Point{X: -1e200, Y: -1e200}},
		{name: "max_float", stored: []geom.Point{{X: math.MaxFloat64, Y: -math.MaxFloat64}}, query: geom.Point{X: -math.MaxFloat64, Y: math.MaxFloat64}},
		{name: "two", stored: []geom.Point{{X: 1e200, Y: 0}, {X: 0, Y: 1e200}}, query: geom.Point{X: -1e200, Y: -1e200}},
	}
	for _, alg := range []AlgType{AlgTypeKDTree, AlgTypeBrute} {
		for _, test := range tests {
			test := test
			t.Run(string(alg)+"/"+test.name, func(t *testing.T) {
				table, err := New[int](alg)
				require.NoError(t, err)
				for i, p := range test.stored {
					require.NoError(t, table.Put(p, i))
				}
				nearest, ok, err := table.Nearest(test.query)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Contains(t, test.stored, nearest)
			})
		}
	}
}
