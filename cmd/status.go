package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmup/wasmup/pkg/status"
	"github.com/wasmup/wasmup/pkg/tools"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of needed tools and the current project setup",
	RunE: func(cmd *cobra.Command, _ []string) error {
		project, err := os.Getwd()
		if err != nil {
			return err
		}

		status.Report(cmd.OutOrStdout(), project, tools.Resolve())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
