package kdst

import (
	"github.com/go-sod/kdst/internal/database"
	"github.com/go-sod/kdst/internal/dataset"
	"github.com/go-sod/kdst/internal/index"
	"github.com/go-sod/kdst/internal/observability"
	"github.com/go-sod/kdst/internal/points"
	"github.com/go-sod/kdst/internal/query"
	"github.com/go-sod/kdst/internal/server"
	"github.com/go-sod/kdst/internal/setup"
)

var (
	_ setup.IndexConfigProvider    = (*Config)(nil)
	_ setup.DatabaseConfigProvider = (*Config)(nil)
	_ setup.DatasetConfigProvider  = (*Config)(nil)
)

type Config struct {
	Server        server.Config
	Index         index.Config
	Database      database.Config
	Dataset       dataset.Config
	Observability observability.Config
	Points        points.Config
	Query         query.Config
}

func (c *Config) IndexConfig() *index.Config {
	return &c.Index
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) DatasetConfig() *dataset.Config {
	return &c.Dataset
}
