package bench

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/go-sod/kdst/internal/index"
)

type Config struct {
	Alg index.AlgType `toml:"alg"`
	// Dataset is a text dataset to index. Random points in the unit square are used when
	// it is empty.
	Dataset    string  `toml:"dataset"`
	Size       int     `toml:"size"`
	NearestOps int     `toml:"nearest_ops"`
	RangeOps   int     `toml:"range_ops"`
	RangeSide  float64 `toml:"range_side"`
	Workers    int     `toml:"workers"`
	Seed       uint32  `toml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Alg:        index.AlgTypeKDTree,
		Size:       100000,
		NearestOps: 100000,
		RangeOps:   10000,
		RangeSide:  0.01,
		Workers:    4,
		Seed:       1,
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(name string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(name, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode bench config %s: %w", name, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Dataset == "" && c.Size <= 0:
		return fmt.Errorf("size must be positive, got %d", c.Size)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.NearestOps < 0 || c.RangeOps < 0:
		return fmt.Errorf("operation counts must not be negative")
	case c.RangeSide < 0 || c.RangeSide > 1:
		return fmt.Errorf("range side must be within [0, 1], got %v", c.RangeSide)
	}
	return nil
}
