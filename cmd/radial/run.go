// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/radial/metrics"
	"github.com/katalvlaran/radial/pipeline"
)

// runFlags are the per-run overrides of the configuration.
type runFlags struct {
	groups      int
	seed        int64
	workers     int
	solver      string
	outCSV      string
	outPNG      string
	db          string
	metricsFile string
	pushgateway string
}

func (a *app) newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <responses.csv>",
		Short: "Partition the participants of a ballot CSV",
		Long: `Reads a ballot (first column participant id, one column per question with
yes/no/empty answers), projects it with PCA, partitions it into balanced
radial groups and writes the configured outputs:

  - assignments CSV (pid,group)
  - PNG chart with hulls, boundary rays and centroid
  - a run record in the SQLite database, when one is configured`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&f.groups, "groups", "k", 0, "Number of groups (overrides config)")
	fl.Int64Var(&f.seed, "seed", 0, "Projection seed (overrides config)")
	fl.IntVar(&f.workers, "workers", 0, "Concurrent offset evaluations (overrides config)")
	fl.StringVar(&f.solver, "solver", "", "Eigen-solver: jacobi or power (overrides config)")
	fl.StringVar(&f.outCSV, "out-csv", "", "Assignments CSV path (overrides config)")
	fl.StringVar(&f.outPNG, "out-png", "", "Chart PNG path (overrides config)")
	fl.StringVar(&f.db, "db", "", "SQLite database path (overrides config)")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	fl.StringVar(&f.pushgateway, "pushgateway", "", "Push Prometheus metrics to this Pushgateway URL")

	return cmd
}

// applyOverrides copies every explicitly set flag into the configuration.
func (a *app) applyOverrides(cmd *cobra.Command, f *runFlags) {
	fl := cmd.Flags()
	if fl.Changed("groups") {
		a.cfg.Groups = f.groups
	}
	if fl.Changed("seed") {
		a.cfg.Projection.Seed = f.seed
	}
	if fl.Changed("workers") {
		a.cfg.Search.Workers = f.workers
	}
	if fl.Changed("solver") {
		a.cfg.Projection.Solver = f.solver
	}
	if fl.Changed("out-csv") {
		a.cfg.Output.Assignments = f.outCSV
	}
	if fl.Changed("out-png") {
		a.cfg.Output.Image = f.outPNG
	}
	if fl.Changed("db") {
		a.cfg.Output.Database = f.db
	}
	if fl.Changed("metrics-file") {
		a.cfg.Metrics.Textfile = f.metricsFile
	}
	if fl.Changed("pushgateway") {
		a.cfg.Metrics.Pushgateway = f.pushgateway
	}
}

func (a *app) run(cmd *cobra.Command, input string, f *runFlags) error {
	a.applyOverrides(cmd, f)
	ctx := cmd.Context()

	var (
		rec  metrics.Recorder = metrics.NewNop()
		prom *metrics.Prometheus
	)
	if a.cfg.Metrics.Textfile != "" || a.cfg.Metrics.Pushgateway != "" {
		prom = metrics.NewPrometheus(nil, "")
		rec = prom
	}

	rep, runErr := pipeline.Run(ctx, a.cfg, input, a.logger, rec)

	if prom != nil {
		if a.cfg.Metrics.Textfile != "" {
			if err := prom.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
				a.logger.Warn("metrics export failed", "error", err)
			}
		}
		if a.cfg.Metrics.Pushgateway != "" {
			if err := prom.Push(ctx, a.cfg.Metrics.Pushgateway, a.cfg.Metrics.Job); err != nil {
				a.logger.Warn("metrics push failed", "error", err)
			}
		}
	}
	if runErr != nil {
		return runErr
	}

	return renderSummary(cmd.OutOrStdout(), rep, a.cfg.Render.Palette)
}
