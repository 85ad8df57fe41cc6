package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wasmup/wasmup/pkg/tools"
)

// Wasm compiles the project into a WebAssembly binary in dist and stages the
// JS support file the browser needs to instantiate it. With a non-nil
// progress writer the compiler's output streams there as it runs, instead of
// only surfacing in the returned error.
func Wasm(project, appName string, release bool, ts *tools.Toolset, progress io.Writer) error {
	args := []string{"build", "-o", filepath.Join("dist", appName+".wasm")}
	if release {
		args = append(args, "-trimpath", "-ldflags=-s -w")
	}
	args = append(args, ".")

	cmd := ts.Command(tools.ToolGo, args...).
		WithDir(project).
		WithEnv("GOOS=js", "GOARCH=wasm")

	var err error
	if progress != nil {
		err = cmd.RunStreaming(progress, progress)
	} else {
		_, _, err = cmd.Run()
	}
	if err != nil {
		return fmt.Errorf("failed compiling wasm binary: %w", err)
	}

	if err := stageWasmExec(project, ts); err != nil {
		return err
	}

	// only run `wasm-opt` in release mode
	if release {
		if err := WasmOpt(filepath.Join(project, "dist", appName+".wasm"), ts); err != nil {
			return err
		}
	}

	return nil
}

// stageWasmExec copies the wasm_exec.js bootstrap shipped with the Go
// toolchain into dist. Newer toolchains keep it under lib/wasm, older ones
// under misc/wasm.
func stageWasmExec(project string, ts *tools.Toolset) error {
	goroot, err := ts.Command(tools.ToolGo, "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("failed resolving GOROOT: %w", err)
	}
	goroot = strings.TrimSpace(goroot)

	candidates := []string{
		filepath.Join(goroot, "lib", "wasm", "wasm_exec.js"),
		filepath.Join(goroot, "misc", "wasm", "wasm_exec.js"),
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		return copyFile(candidate, filepath.Join(project, "dist", "wasm_exec.js"))
	}

	return fmt.Errorf("wasm_exec.js not found in GOROOT %s", goroot)
}

// WasmOpt shrinks the wasm binary in place using the wasm-opt tool.
func WasmOpt(wasmPath string, ts *tools.Toolset) error {
	if _, ok := ts.Path(tools.ToolWasmOpt); !ok {
		return fmt.Errorf("wasm-opt is not installed")
	}

	if _, _, err := ts.Command(tools.ToolWasmOpt, "-Oz", "-o", wasmPath, wasmPath).Run(); err != nil {
		return fmt.Errorf("failed optimizing wasm binary: %w", err)
	}
	return nil
}
