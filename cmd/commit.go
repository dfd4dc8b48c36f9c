package cmd

import (
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Auto-generate a commit message and commit staged changes",
	Long: `Generate a commit message for the staged changes and commit them.

Running quickcommit without a command does the same.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCommit(cmd)
	},
}

func init() {
	addCommitFlags(commitCmd)
	rootCmd.AddCommand(commitCmd)
}
