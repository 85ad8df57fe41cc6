package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmup/wasmup/pkg/build"
	"github.com/wasmup/wasmup/pkg/tools"
	"github.com/wasmup/wasmup/pkg/utils/gitignore"
)

var buildReleaseFlag bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the project",
	Long:  `Build the whole project from scratch into the dist directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		project, err := os.Getwd()
		if err != nil {
			return err
		}

		builder, err := newBuilder(project)
		if err != nil {
			return err
		}

		// one-shot builds stream the compiler output as it runs
		builder.Progress = cmd.ErrOrStderr()

		return builder.Full(buildReleaseFlag, false)
	},
}

// newBuilder wires up the ignore filter and toolset for the project and
// creates a builder from them.
func newBuilder(project string) (*build.Builder, error) {
	filter, err := gitignore.Load(project)
	if err != nil {
		return nil, err
	}

	return build.New(project, tools.Resolve(), filter, *log)
}

func init() {
	buildCmd.Flags().BoolVarP(&buildReleaseFlag, "release", "r", false, "build in release mode (optimized and minified)")
	rootCmd.AddCommand(buildCmd)
}
