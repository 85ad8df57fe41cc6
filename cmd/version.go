package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wasmup/wasmup/pkg/utils/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
