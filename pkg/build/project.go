package build

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
)

// manifest is the optional Wasmup.toml project manifest. Only the package
// name is read from it.
type manifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// AppName determines the application name, used for the generated wasm and
// JS file names. A `[package] name` in Wasmup.toml wins; otherwise the last
// element of the module path in go.mod is used.
func AppName(project string) (string, error) {
	buf, err := os.ReadFile(filepath.Join(project, "Wasmup.toml"))
	switch {
	case err == nil:
		var m manifest
		if err := toml.Unmarshal(buf, &m); err != nil {
			return "", fmt.Errorf("failed parsing Wasmup.toml: %w", err)
		}
		if m.Package.Name != "" {
			return m.Package.Name, nil
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed reading Wasmup.toml: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(project, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed reading go.mod: %w", err)
	}

	module := modfile.ModulePath(data)
	if module == "" {
		return "", fmt.Errorf("no module path found in go.mod")
	}

	return path.Base(module), nil
}

// StyleMode is the stylesheet framework used by the project. It decides
// which tools run when building the stylesheet component.
type StyleMode uint8

const (
	// StyleSass is the SASS/SCSS framework, the default.
	StyleSass StyleMode = iota
	// StyleTailwind is the TailwindCSS framework.
	StyleTailwind
)

func (m StyleMode) String() string {
	if m == StyleTailwind {
		return "tailwind"
	}
	return "sass"
}

// DetectStyleMode decides the stylesheet framework: the presence of a
// tailwind.config.js switches to tailwind, otherwise sass is assumed.
func DetectStyleMode(project string) (StyleMode, error) {
	_, err := os.Stat(filepath.Join(project, "tailwind.config.js"))
	switch {
	case err == nil:
		return StyleTailwind, nil
	case os.IsNotExist(err):
		return StyleSass, nil
	default:
		return StyleSass, err
	}
}
