package database

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/go-sod/kdst/internal/database"
	"github.com/go-sod/kdst/internal/geom"
)

// The name index lives outside prefix so no dataset name can address it.
const (
	datasetKeys = "datasets"
	prefix      = "dataset:"
)

var ErrNotFound = errors.New("dataset not found")

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

// DB keeps named point sets, each in its own bucket with points keyed by insertion order.
type DB struct {
	sDB *database.DB
}

func (db *DB) extractKey(key string) string {
	return strings.TrimPrefix(key, prefix)
}

func (db *DB) Names() ([]string, error) {
	var names []string
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(datasetKeys))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, db.extractKey(string(k)))
		}
		return nil
	})

	return names, err
}

// Store replaces the dataset called name with points.
func (db *DB) Store(_ context.Context, name string, points []geom.Point) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		bucketName := []byte(prefix + name)
		if err := tx.DeleteBucket(bucketName); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("drop bucket: %w", err)
		}
		b, err := tx.CreateBucket(bucketName)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		for _, p := range points {
			seq, err := b.NextSequence()
			if err != nil {
				return fmt.Errorf("next sequence: %w", err)
			}
			bytes, err := json.Marshal(p)
			if err != nil {
				return err
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)
			if err := b.Put(key, bytes); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
		}
		keys, err := tx.CreateBucketIfNotExists([]byte(datasetKeys))
		if err != nil {
			return fmt.Errorf("unable create datasets bucket: %w", err)
		}
		if err := keys.Put(bucketName, []byte{0x0}); err != nil {
			return fmt.Errorf("unable put to datasets bucket: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

// Load returns the points of the dataset in the order they were stored.
func (db *DB) Load(_ context.Context, name string) ([]geom.Point, error) {
	var points []geom.Point
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + name))
		if b == nil {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var p geom.Point
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("dataset %s unmarshal error: %w", name, err)
			}
			points = append(points, p)
		}
		return nil
	})

	return points, err
}
