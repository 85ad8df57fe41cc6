// Package tools locates and invokes the external programs wasmup depends on
// to build the different parts of a project.
package tools

import (
	"os/exec"
)

// Known tool names. Go is required for every build, the rest only for the
// build steps that use them.
const (
	ToolGo       = "go"
	ToolSass     = "sass"
	ToolTailwind = "tailwindcss"
	ToolWasmOpt  = "wasm-opt"
)

// Toolset resolves the binaries wasmup invokes once at startup and hands the
// result down to the components that need it, instead of looking tools up as
// ambient process-wide state.
type Toolset struct {
	paths map[string]string
}

// Resolve looks up all known tools on PATH. Missing tools are not an error
// here; they only fail the individual build step that needs them and show up
// in the status report.
func Resolve() *Toolset {
	ts := &Toolset{paths: make(map[string]string, 4)}
	for _, name := range []string{ToolGo, ToolSass, ToolTailwind, ToolWasmOpt} {
		if path, err := exec.LookPath(name); err == nil {
			ts.paths[name] = path
		}
	}
	return ts
}

// Path returns the resolved absolute path for the named tool and whether it
// was found.
func (ts *Toolset) Path(name string) (string, bool) {
	path, ok := ts.paths[name]
	return path, ok
}

// Command creates an executor for the named tool, using the resolved path
// when available and the bare name otherwise, so the resulting error names
// the missing binary.
func (ts *Toolset) Command(name string, args ...string) *Executor {
	if path, ok := ts.paths[name]; ok {
		return NewExecutor(path, args...)
	}
	return NewExecutor(name, args...)
}
