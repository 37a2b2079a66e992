package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-sod/kdst/internal/database"
	"github.com/go-sod/kdst/internal/dataset"
	datasetdb "github.com/go-sod/kdst/internal/dataset/database"
	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/internal/index"
	"github.com/go-sod/kdst/internal/logging"
	"github.com/go-sod/kdst/internal/registry"
	"github.com/go-sod/kdst/internal/srvenv"
)

type IndexConfigProvider interface {
	IndexConfig() *index.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type DatasetConfigProvider interface {
	DatasetConfig() *dataset.Config
}

// Setup fills config from the environment and prepares the dependencies the config asks
// for. The returned env owns the database handle, if any.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var db *database.DB
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && dbConfigProvider.DatabaseConfig().FileName != "" {
		logger.Info("Configuring db")
		dbFromEnv, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to open database: %w", err)
		}
		db = dbFromEnv
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}

	if indexConfigProvider, ok := config.(IndexConfigProvider); ok {
		logger.Info("Configuring index")
		var datasetCfg *dataset.Config
		if datasetConfigProvider, ok := config.(DatasetConfigProvider); ok {
			datasetCfg = datasetConfigProvider.DatasetConfig()
		}
		provideFn, err := ProvideRegistryFor(indexConfigProvider.IndexConfig(), datasetCfg, db)
		if err != nil {
			if db != nil {
				_ = db.Close(ctx)
			}
			return nil, fmt.Errorf("unable create registry provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithRegistry(provideFn))
	}

	return srvenv.New(serverEnvOpts...), nil
}

// ProvideRegistryFor returns a function building a registry with the configured index,
// preloaded with the configured dataset.
func ProvideRegistryFor(cfg *index.Config, datasetCfg *dataset.Config, db *database.DB) (registry.ProvideFn, error) {
	if _, err := index.New[struct{}](cfg.AlgType); err != nil {
		return nil, err
	}
	if datasetCfg != nil && datasetCfg.File == "" && datasetCfg.Name != "" && db == nil {
		return nil, fmt.Errorf("dataset %q requires a database", datasetCfg.Name)
	}
	return func(ctx context.Context) (*registry.Registry, error) {
		reg, err := registry.New(cfg.AlgType)
		if err != nil {
			return nil, err
		}
		if datasetCfg == nil {
			return reg, nil
		}

		var points []geom.Point
		switch {
		case datasetCfg.File != "":
			points, err = dataset.ReadFile(datasetCfg.File)
		case datasetCfg.Name != "":
			points, err = datasetdb.New(db).Load(ctx, datasetCfg.Name)
		default:
			return reg, nil
		}
		if err != nil {
			return nil, fmt.Errorf("preload dataset: %w", err)
		}
		if err := reg.Load(ctx, points); err != nil {
			return nil, fmt.Errorf("preload dataset: %w", err)
		}
		logging.FromContext(ctx).Infof("preloaded %d points, index size %d", len(points), reg.Len())
		return reg, nil
	}, nil
}
