package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"schemasynth/internal/baseline"
	"schemasynth/internal/config"
	"schemasynth/internal/dialect"
	introspect "schemasynth/internal/introspect/mysql"
	"schemasynth/internal/parser"
	"schemasynth/internal/registry"
)

func dumpCmd(opts *rootOptions) *cobra.Command {
	var baselines []string
	var contributions []string
	var dsn string
	var outFile string
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the DDL needed to bring the baseline up to date",
		Long: `Dump loads the baseline schema, replays every contribution file in
sorted path order and prints the CREATE TABLE statements holding only the
columns, indexes and foreign keys that differ from the baseline.

Examples:
  schemasynth dump --baseline 'ext/*/ext_tables.sql' --contrib 'config/*.toml'
  schemasynth dump --dsn "user:pass@tcp(localhost:3306)/app" --contrib news.toml -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("baseline") {
				cfg.Baseline = baselines
			}
			if flags.Changed("contrib") {
				cfg.Contributions = contributions
			}
			if flags.Changed("dsn") {
				cfg.Database.DSN = dsn
			}
			if flags.Changed("output") {
				cfg.Output = outFile
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := opts.logger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			d, err := dialect.GetDialect(dialect.Type(cfg.Dialect))
			if err != nil {
				return err
			}
			src, closeSource, err := baselineSource(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeSource()

			reg := registry.New(d,
				registry.WithBaseline(src),
				registry.WithLogger(logger),
				registry.WithFormat(cfg.Format),
			)
			if _, err := reg.Definition(ctx); err != nil {
				return err
			}

			files, err := baseline.FileSource{Patterns: cfg.Contributions}.Files()
			if err != nil {
				return err
			}
			for _, f := range files {
				c, err := parser.ParseContributionFile(f)
				if err != nil {
					return err
				}
				if err := c.Apply(ctx, reg); err != nil {
					return fmt.Errorf("apply %s: %w", f, err)
				}
				logger.Debug("contributions applied", "file", f, "variants", len(c.Variants), "overrides", len(c.Overrides))
			}

			text, err := reg.Dump(ctx)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), cfg.Output, text)
		},
	}

	cmd.Flags().StringArrayVarP(&baselines, "baseline", "b", nil, "Baseline schema file or glob (repeatable)")
	cmd.Flags().StringArrayVar(&contributions, "contrib", nil, "Contribution file or glob (repeatable)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Read the baseline from a live MySQL database instead of files")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: sql or json")
	return cmd
}

// baselineSource returns the live database source when a DSN is configured
// and the file source otherwise. The returned func releases the source.
func baselineSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (baseline.Source, func(), error) {
	if cfg.Database.DSN == "" {
		return baseline.FileSource{Patterns: cfg.Baseline}, func() {}, nil
	}
	db, err := introspect.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}

	flavor, version, err := introspect.DetectDialect(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("connected to baseline database", "dialect", flavor, "version", version)
	if flavor != dialect.Type(cfg.Dialect) {
		logger.Warn("baseline server does not match the configured dialect", "server", flavor, "dialect", cfg.Dialect)
	}
	return introspect.Source{DB: db}, func() { _ = db.Close() }, nil
}

func writeOutput(stdout io.Writer, path, text string) error {
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
