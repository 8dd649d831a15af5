package main

import (
	"os"
	"path/filepath"

	"github.com/mailstepcz/horn/repl"
	"github.com/spf13/cobra"
)

func newREPLCommand(params *rootParams) *cobra.Command {
	var history string

	cmd := &cobra.Command{
		Use:   "repl [file...]",
		Short: "Start the interactive shell",
		Long: `Start the interactive shell.

The given files are loaded before the first prompt. Type :help for the list of commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := setup(cmd.Context(), params, cmd.OutOrStdout(), cmd.ErrOrStderr(), args,
				repl.WithHistory(history),
				repl.WithBanner("Type :help for the list of commands, :exit to leave."))
			if err != nil {
				return err
			}
			return r.Loop()
		},
	}

	cmd.Flags().StringVar(&history, "history", defaultHistoryPath(), "set the path of the history file")
	return cmd
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".horn_history"
	}
	return filepath.Join(home, ".horn_history")
}
