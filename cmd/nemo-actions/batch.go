package main

import (
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch 'COMMAND {}' FILE...",
	Short: "Run a shell command once per file",
	Long: `Batch runs COMMAND through sh for every file, with each {} replaced by the
file path, under a progress dialog. The first failing command stops the batch
and its output is shown in an error dialog.`,
	Example: `  nemo-actions batch 'gzip -k {}' a.log b.log`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	return current.session(args[1:]).Batch(cmd.Context(), args[0])
}
