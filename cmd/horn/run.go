package main

import (
	"github.com/spf13/cobra"
)

func newRunCommand(params *rootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file> [file...]",
		Short: "Execute programs and print the answers to their queries",
		Long: `Execute programs and print the answers to their queries.

Files ending in .yaml or .yml are read as YAML fact sources, files ending in
.sexp as symbolic expressions and all other files in the rule syntax. All files
share one knowledge base and are executed in the given order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := setup(cmd.Context(), params, cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
			return err
		},
	}
}
