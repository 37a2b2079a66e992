package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-sod/kdst/internal/bench"
	"github.com/go-sod/kdst/internal/buildinfo"
	"github.com/go-sod/kdst/internal/database"
	"github.com/go-sod/kdst/internal/dataset"
	datasetdb "github.com/go-sod/kdst/internal/dataset/database"
	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/internal/index"
	"github.com/go-sod/kdst/pkg/container/symtab"
)

type source struct {
	alg    string
	file   string
	dbFile string
	name   string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.alg, "alg", string(index.AlgTypeKDTree), "index algorithm, KD_TREE or BRUTE")
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "text dataset")
	cmd.Flags().StringVar(&s.dbFile, "db", "", "dataset database")
	cmd.Flags().StringVar(&s.name, "name", "", "dataset name in the database")
}

func (s *source) table(ctx context.Context) (symtab.Table[int], error) {
	var (
		points []geom.Point
		err    error
	)
	switch {
	case s.file != "":
		points, err = dataset.ReadFile(s.file)
	case s.dbFile != "" && s.name != "":
		var db *database.DB
		db, err = database.NewFromEnv(ctx, &database.Config{FileName: s.dbFile})
		if err != nil {
			return nil, err
		}
		defer db.Close(ctx)
		points, err = datasetdb.New(db).Load(ctx, s.name)
	default:
		return nil, fmt.Errorf("either --file or both --db and --name are required")
	}
	if err != nil {
		return nil, err
	}
	table, err := index.New[int](index.AlgType(s.alg))
	if err != nil {
		return nil, err
	}
	if err := dataset.Load(table, points); err != nil {
		return nil, err
	}
	return table, nil
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func RegisterBenchCommand() *cobra.Command {
	var (
		configFile string
		alg        string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "measure nearest and range query throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bench.DefaultConfig()
			if configFile != "" {
				loaded, err := bench.LoadConfig(configFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("alg") {
				cfg.Alg = index.AlgType(alg)
			}
			report, err := bench.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s: %d points, height %d, built in %v\n", report.Alg, report.Size, report.Height, report.Build.Elapsed)
			_, _ = fmt.Fprintf(out, "nearest: %d ops in %v, %.0f ops/s\n", report.Nearest.Ops, report.Nearest.Elapsed, report.Nearest.PerSecond)
			_, _ = fmt.Fprintf(out, "range: %d ops in %v, %.0f ops/s, %d points matched\n", report.Range.Ops, report.Range.Elapsed, report.Range.PerSecond, report.Range.Hits)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "TOML bench config")
	cmd.Flags().StringVar(&alg, "alg", string(index.AlgTypeKDTree), "index algorithm, KD_TREE or BRUTE")
	return cmd
}

func RegisterNearestCommand() *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "nearest {x} {y}",
		Short: "print the dataset point closest to (x, y)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseFloats(args)
			if err != nil {
				return err
			}
			table, err := src.table(cmd.Context())
			if err != nil {
				return err
			}
			query := geom.NewPoint(coords[0], coords[1])
			nearest, ok, err := table.Nearest(query)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("dataset is empty")
			}
			return printJSON(cmd, map[string]interface{}{
				"query":    query,
				"point":    nearest,
				"distance": query.DistanceTo(nearest),
			})
		},
	}
	src.register(cmd)
	return cmd
}

func RegisterRangeCommand() *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "range {xmin} {ymin} {xmax} {ymax}",
		Short: "print the dataset points inside the rectangle",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			bounds, err := parseFloats(args)
			if err != nil {
				return err
			}
			table, err := src.table(cmd.Context())
			if err != nil {
				return err
			}
			rect := geom.NewRect(bounds[0], bounds[1], bounds[2], bounds[3])
			points, err := table.Range(rect)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"rect":   rect,
				"points": points,
			})
		},
	}
	src.register(cmd)
	return cmd
}

func RegisterImportCommand() *cobra.Command {
	var dbFile string
	cmd := &cobra.Command{
		Use:   "import {name} {file}",
		Short: "store a text dataset in the dataset database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			points, err := dataset.ReadFile(args[1])
			if err != nil {
				return err
			}
			db, err := database.NewFromEnv(ctx, &database.Config{FileName: dbFile})
			if err != nil {
				return err
			}
			defer db.Close(ctx)
			if err := datasetdb.New(db).Store(ctx, args[0], points); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stored %d points as %s\n", len(points), args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&dbFile, "db", "kdst.db", "dataset database")
	return cmd
}

func RegisterVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), buildinfo.Graffiti)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %s\n", buildinfo.Info.Name(), buildinfo.Info.Time(), buildinfo.Info.Tag())
		},
	}
}

