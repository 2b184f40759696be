package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schemasynth/internal/core"
	"schemasynth/internal/dialect"
	"schemasynth/internal/diff"
)

func diffCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old.sql> <new.sql>",
		Short: "Compare two schemas table by table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			d, err := dialect.GetDialect(dialect.Type(cfg.Dialect))
			if err != nil {
				return err
			}

			oldDB, err := parseSchemaFile(d.Parser(), args[0])
			if err != nil {
				return fmt.Errorf("parse old schema error: %w", err)
			}
			newDB, err := parseSchemaFile(d.Parser(), args[1])
			if err != nil {
				return fmt.Errorf("parse new schema error: %w", err)
			}

			out := cmd.OutOrStdout()
			changed := 0
			for _, nt := range newDB.Tables {
				ot := oldDB.FindTable(nt.Name)
				if ot == nil {
					fmt.Fprintf(out, "Table %s: new (%d columns)\n", nt.Name, len(nt.Columns))
					changed++
					continue
				}
				td := diff.Compare(ot, nt)
				if td.IsEmpty() {
					continue
				}
				fmt.Fprint(out, td.String())
				changed++
			}
			if changed == 0 {
				fmt.Fprintln(out, "No differences detected.")
			}
			return nil
		},
	}
}

func parseSchemaFile(p dialect.Parser, path string) (*core.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(string(data))
}
