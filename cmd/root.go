// Package cmd contains the command line interface of wasmup.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	wasmupctx "github.com/wasmup/wasmup/pkg/context"
	logpkg "github.com/wasmup/wasmup/pkg/utils/log"
)

var (
	wasmupCtx *wasmupctx.WasmupContext
	log       logpkg.Logger

	globalFlags wasmupctx.GlobalFlags
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wasmup",
	Short: "wasmup builds and serves Go WebAssembly web applications",
	Long: `wasmup is a build tool for web applications compiled to WebAssembly.
It builds the HTML entry, stylesheets, static assets and the wasm binary,
and runs a local dev server that rebuilds only the changed part of the
project and live-reloads connected browsers.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		wasmupCtx = wasmupctx.InitWasmupContext(globalFlags)
		log = wasmupCtx.Logger
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "suppress all output except errors")
}
