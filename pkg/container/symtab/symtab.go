// Package symtab declares the point symbol table contract shared by the 2d-tree and the
// brute-force table, together with the argument checks both of them apply.
package symtab

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-sod/kdst/internal/geom"
)

var ErrInvalidArgument = errors.New("invalid argument")

type Table[V any] interface {
	Put(p geom.Point, val V) error
	Get(p geom.Point) (V, bool, error)
	Contains(p geom.Point) (bool, error)
	Points() []geom.Point
	Range(r geom.Rect) ([]geom.Point, error)
	Nearest(p geom.Point) (geom.Point, bool, error)
	Len() int
	IsEmpty() bool
}

func CheckPoint(p geom.Point) error {
	if !p.Valid() {
		return fmt.Errorf("point %s: %w", p, ErrInvalidArgument)
	}
	return nil
}

func CheckRect(r geom.Rect) error {
	if !r.Valid() {
		return fmt.Errorf("rect %s: %w", r, ErrInvalidArgument)
	}
	return nil
}

// CheckValue rejects nil interfaces, pointers, maps, slices, funcs and channels.
func CheckValue(val interface{}) error {
	if isNil(val) {
		return fmt.Errorf("nil value: %w", ErrInvalidArgument)
	}
	return nil
}

func isNil(val interface{}) bool {
	if val == nil {
		return true
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
