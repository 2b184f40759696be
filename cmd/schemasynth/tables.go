package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schemasynth/internal/baseline"
	"schemasynth/internal/dialect"
)

func tablesCmd(opts *rootOptions) *cobra.Command {
	var baselines []string
	var dsn string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the baseline schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("baseline") {
				cfg.Baseline = baselines
			}
			if cmd.Flags().Changed("dsn") {
				cfg.Database.DSN = dsn
			}

			logger, err := opts.logger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			d, err := dialect.GetDialect(dialect.Type(cfg.Dialect))
			if err != nil {
				return err
			}
			src, closeSource, err := baselineSource(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeSource()

			db, err := baseline.Load(cmd.Context(), src, d.Parser())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tables found: %d\n", len(db.Tables))
			for _, t := range db.Tables {
				fmt.Fprintf(out, "- %s (%d columns)\n", t.Name, len(t.Columns))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&baselines, "baseline", "b", nil, "Baseline schema file or glob (repeatable)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Read the baseline from a live MySQL database instead of files")
	return cmd
}
