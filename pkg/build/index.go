package build

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Markers within the project's index.html where the generated head and body
// snippets are injected.
const (
	markerHead = "<!--WASMUP-HEAD-->"
	markerBody = "<!--WASMUP-BODY-->"
)

// Index transforms the project's index.html into dist/index.html, injecting
// the stylesheet link, the wasm bootstrap script and, in dev mode, the
// page-reload script.
func Index(project, appName string, release, dev bool) error {
	data, err := os.ReadFile(filepath.Join(project, "index.html"))
	if err != nil {
		return fmt.Errorf("failed reading index.html: %w", err)
	}

	top, rest, ok := strings.Cut(string(data), markerHead)
	if !ok {
		return fmt.Errorf("index.html is missing the %s marker", markerHead)
	}
	middle, bottom, ok := strings.Cut(rest, markerBody)
	if !ok {
		return fmt.Errorf("index.html is missing the %s marker", markerBody)
	}

	top = strings.TrimRight(top, " \t")
	middle = strings.TrimRight(middle, " \t")
	bottom = strings.TrimRight(bottom, " \t")

	out, err := os.Create(filepath.Join(project, "dist", "index.html"))
	if err != nil {
		return fmt.Errorf("failed creating dist/index.html: %w", err)
	}

	w := bufio.NewWriter(out)

	w.WriteString(top)
	if !release {
		w.WriteString("    <!-- stylesheet -->\n")
	}
	w.WriteString(`    <link rel="stylesheet" href="/main.css">`)

	w.WriteString(middle)
	if !release {
		w.WriteString("    <!-- WASM initialization -->\n")
	}
	w.WriteString("    <script src=\"/wasm_exec.js\"></script>\n")
	w.WriteString("    <script>\n")
	w.WriteString("      const go = new Go();\n")
	fmt.Fprintf(w, "      WebAssembly.instantiateStreaming(fetch('/%s.wasm'), go.importObject)\n", appName)
	w.WriteString("        .then((result) => go.run(result.instance));\n")
	w.WriteString("    </script>")

	if dev {
		w.WriteString("\n    <!-- dev page reload script -->\n")
		w.WriteString(`    <script src="/__WASMUP__/reload.js"></script>`)
	}

	w.WriteString(bottom)

	if err := w.Flush(); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed writing dist/index.html: %w", err)
	}
	return out.Close()
}
