package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/kdst/internal/database"
	"github.com/go-sod/kdst/internal/geom"
)

func openDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewFromEnv(context.Background(), &database.Config{
		FileName: filepath.Join(t.TempDir(), "kdst.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close(context.Background())
	})
	return db
}

func TestDB_StoreLoad(t *testing.T) {
	ctx := context.Background()
	db := New(openDB(t))

	names, err := db.Names()
	require.NoError(t, err)
	assert.Empty(t, names)

	points := []geom.Point{{X: 0.7, Y: 0.2}, {X: 0.5, Y: 0.4}, {X: 0.2, Y: 0.3}}
	require.NoError(t, db.Store(ctx, "input3", points))
	require.NoError(t, db.Store(ctx, "single", []geom.Point{{X: 1, Y: 1}}))

	loaded, err := db.Load(ctx, "input3")
	require.NoError(t, err)
	assert.Equal(t, points, loaded)

	require.NoError(t, db.Store(ctx, "input3", points[:1]))
	loaded, err = db.Load(ctx, "input3")
	require.NoError(t, err)
	assert.Equal(t, points[:1], loaded)

	names, err = db.Names()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"input3", "single"}, names)

	_, err = db.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDB_NamesCannotReachIndex(t *testing.T) {
	ctx := context.Background()
	db := New(openDB(t))

	stored := map[string][]geom.Point{
		"a":         {{X: 0.1, Y: 0.2}},
		"keys:":     {{X: 0.3, Y: 0.4}, {X: 0.5, Y: 0.6}},
		"s":         {{X: 1, Y: 2}},
		"dataset:a": {{X: 3, Y: 4}},
	}
	for _, name := range []string{"a", "keys:", "s", "dataset:a"} {
		require.NoError(t, db.Store(ctx, name, stored[name]))
	}

	names, err := db.Names()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "keys:", "s", "dataset:a"}, names)
	for name, points := range stored {
		loaded, err := db.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, points, loaded, name)
	}
}
