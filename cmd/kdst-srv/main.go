package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-sod/kdst/internal/buildinfo"
	kdst "github.com/go-sod/kdst/internal/config"
	"github.com/go-sod/kdst/internal/logging"
	"github.com/go-sod/kdst/internal/observability"
	"github.com/go-sod/kdst/internal/points"
	"github.com/go-sod/kdst/internal/query"
	"github.com/go-sod/kdst/internal/server"
	"github.com/go-sod/kdst/internal/setup"
	"github.com/go-sod/kdst/internal/shutdown"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		done()
		logger.Fatal(err)
	}

	done()
}

func run(ctx context.Context) error {
	config := kdst.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)

	reg, err := env.ProvideRegistry()(ctx)
	if err != nil {
		return fmt.Errorf("registry provider function error: %w", err)
	}

	srv, err := server.New(&config.Server)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()

	pointsHandler, err := points.NewHandler(&config.Points, reg)
	if err != nil {
		return fmt.Errorf("points.NewHandler: %w", err)
	}
	rangeHandler, err := query.NewRangeHandler(&config.Query, reg)
	if err != nil {
		return fmt.Errorf("query.NewRangeHandler: %w", err)
	}
	nearestHandler, err := query.NewNearestHandler(&config.Query, reg)
	if err != nil {
		return fmt.Errorf("query.NewNearestHandler: %w", err)
	}
	metricsHandler, err := observability.NewHandler(&config.Observability)
	if err != nil {
		return fmt.Errorf("observability.NewHandler: %w", err)
	}

	mux.Handle("/points", pointsHandler)
	mux.Handle("/range", rangeHandler)
	mux.Handle("/nearest", nearestHandler)
	mux.Handle("/metrics", metricsHandler)
	mux.Handle("/health", server.HandleHealth(ctx))
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	logging.FromContext(ctx).Infof("serving %d points on %s", reg.Len(), srv.Addr())
	return srv.ServeHTTPHandler(ctx, mux)
}
