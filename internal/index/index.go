package index

import (
	"fmt"

	"github.com/go-sod/kdst/pkg/container/kdtree"
	"github.com/go-sod/kdst/pkg/container/pointst"
	"github.com/go-sod/kdst/pkg/container/symtab"
)

type AlgType string

const (
	AlgTypeKDTree AlgType = "KD_TREE"
	AlgTypeBrute  AlgType = "BRUTE"
)

type Config struct {
	AlgType AlgType `envconfig:"KDST_INDEX_ALG" default:"KD_TREE"`
}

// New returns an empty point table backed by the requested algorithm.
func New[V any](alg AlgType) (symtab.Table[V], error) {
	switch alg {
	case AlgTypeKDTree:
		return kdtree.New[V](), nil
	case AlgTypeBrute:
		return pointst.New[V](), nil
	default:
		return nil, fmt.Errorf("unable to create index with alg type %s", alg)
	}
}
