// Package dataset reads point sets and feeds them into point tables.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/pkg/container/symtab"
)

var ErrOddTokens = errors.New("odd number of coordinates")

// ReadText parses whitespace separated numbers, taken pairwise as x and y.
func ReadText(r io.Reader) ([]geom.Point, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var (
		points  []geom.Point
		coords  [2]float64
		pending int
		token   int
	)
	for scanner.Scan() {
		token++
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", token, err)
		}
		coords[pending] = v
		pending++
		if pending == 2 {
			points = append(points, geom.NewPoint(coords[0], coords[1]))
			pending = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading points: %w", err)
	}
	if pending != 0 {
		return nil, fmt.Errorf("after %d points: %w", len(points), ErrOddTokens)
	}
	return points, nil
}

func ReadFile(name string) ([]geom.Point, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	points, err := ReadText(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}
	return points, nil
}

// Load puts every point into table, valued by its position in points. Repeated points
// keep the last position.
func Load(table symtab.Table[int], points []geom.Point) error {
	for i, p := range points {
		if err := table.Put(p, i); err != nil {
			return fmt.Errorf("load point %d: %w", i, err)
		}
	}
	return nil
}
