package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wasmup/wasmup/pkg/tools"
)

// Sass compiles the first existing main stylesheet into dist/main.css. A
// project without a main stylesheet is fine, the step is simply skipped.
func Sass(project string, ts *tools.Toolset, release bool) error {
	stylesheets := []string{
		filepath.Join(project, "assets", "main.sass"),
		filepath.Join(project, "assets", "main.scss"),
		filepath.Join(project, "assets", "main.css"),
	}

	for _, stylesheet := range stylesheets {
		if _, err := os.Stat(stylesheet); err != nil {
			continue
		}

		args := []string{stylesheet, filepath.Join(project, "dist", "main.css"), "--no-source-map"}
		if release {
			args = append(args, "--style=compressed")
		}

		if _, _, err := ts.Command(tools.ToolSass, args...).WithDir(project).Run(); err != nil {
			return fmt.Errorf("failed compiling stylesheets: %w", err)
		}
		return nil
	}

	return nil
}

// Tailwind runs the TailwindCSS compiler into dist/main.css. Tailwind scans
// the project sources for used classes, so callers rerun it for markup and
// source changes as well.
func Tailwind(project string, ts *tools.Toolset, release bool) error {
	input := filepath.Join(project, "assets", "main.css")

	args := []string{"-i", input, "-o", filepath.Join(project, "dist", "main.css")}
	if release {
		args = append(args, "--minify")
	}

	if _, _, err := ts.Command(tools.ToolTailwind, args...).WithDir(project).Run(); err != nil {
		return fmt.Errorf("failed compiling stylesheets: %w", err)
	}
	return nil
}
