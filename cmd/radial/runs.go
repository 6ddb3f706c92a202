// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/radial/store"
)

// errNoDatabase is returned when a store command has no database path.
var errNoDatabase = errors.New("no database configured (use --db, output.database or RADIAL_DB)")

func (a *app) openStore(cmd *cobra.Command, db string) (*store.Store, error) {
	if cmd.Flags().Changed("db") {
		a.cfg.Output.Database = db
	}
	if a.cfg.Output.Database == "" {
		return nil, errNoDatabase
	}

	return store.Open(cmd.Context(), a.cfg.Output.Database)
}

func (a *app) newRunsCmd() *cobra.Command {
	var (
		db    string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd, db)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return renderRuns(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database path (overrides config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 = all)")

	return cmd
}

func (a *app) newShowCmd() *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the assignment and boundaries of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd, db)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.LoadRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderRun(cmd.OutOrStdout(), run, a.cfg.Render.Palette)
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database path (overrides config)")

	return cmd
}

func (a *app) newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := a.cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration written to %s\n", path)
			return nil
		},
	}
}
