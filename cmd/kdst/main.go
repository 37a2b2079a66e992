package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-sod/kdst/internal/logging"
	"github.com/go-sod/kdst/internal/shutdown"
)

func main() {
	ctx, done := shutdown.New()
	ctx = logging.WithLogger(ctx, logging.DefaultLogger())

	root := &cobra.Command{
		Use:           "kdst",
		Short:         "2d-tree point index tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		RegisterBenchCommand(),
		RegisterNearestCommand(),
		RegisterRangeCommand(),
		RegisterImportCommand(),
		RegisterVersionCommand(),
	)

	err := root.ExecuteContext(ctx)
	done()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
