package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wasmup/wasmup/pkg/configs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the wasmup configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(_ *cobra.Command, _ []string) error {
		return configs.WriteDefault(".wasmup.yaml")
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return configs.GenConfigSchema(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configSchemaCmd)
	rootCmd.AddCommand(configCmd)
}
