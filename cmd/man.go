package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var manDirFlag string

var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages for wasmup",
	RunE: func(_ *cobra.Command, _ []string) error {
		return genManPages(manDirFlag)
	},
}

// genManPages writes one man page per command into dir, creating it first.
func genManPages(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	header := &doc.GenManHeader{Title: "WASMUP", Section: "1"}
	return doc.GenManTree(rootCmd, header, dir)
}

func init() {
	manCmd.Flags().StringVarP(&manDirFlag, "dir", "d", "man", "output directory for the generated pages")
	rootCmd.AddCommand(manCmd)
}
