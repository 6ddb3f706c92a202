// SPDX-License-Identifier: MIT

// Command radial partitions questionnaire participants into balanced,
// angularly contiguous deliberation groups.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/radial/config"
	"github.com/katalvlaran/radial/logging"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *logging.Logger
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	return (&app{}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "radial",
		Short: "Balanced radial partitioning of survey participants",
		Long: `radial projects yes/no questionnaire answers onto two principal
components, then slices the plane around the centroid into K contiguous
"pizza" sectors whose sizes differ by at most one.

Configuration is read from --config (YAML); RADIAL_GROUPS, RADIAL_SEED,
RADIAL_DB and RADIAL_LOG_LEVEL override it, and command flags override both.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.verbose {
				cfg.Logging.Level = "debug"
			}
			a.cfg = cfg
			a.logger, err = logging.New(cfg.Logging.Mode, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "radial.yaml", "Path to the YAML configuration")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(a.newRunCmd())
	root.AddCommand(a.newRunsCmd())
	root.AddCommand(a.newShowCmd())
	root.AddCommand(a.newInitConfigCmd())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
