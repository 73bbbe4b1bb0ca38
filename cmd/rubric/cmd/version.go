package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/rubric/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rubric %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
