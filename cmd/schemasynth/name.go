package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schemasynth/internal/naming"
)

func nameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <base> [suffix]",
		Short: "Print a table name shortened to the identifier limit",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			suffix := ""
			if len(args) == 2 {
				suffix = args[1]
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), naming.PrepareTableName(args[0], suffix))
			return err
		},
	}
}
