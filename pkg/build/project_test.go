package build

import (
	"path/filepath"
	"testing"
)

func TestAppNameFromGoMod(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "go.mod"), "module github.com/someone/webapp\n\ngo 1.24\n")

	name, err := AppName(project)
	if err != nil {
		t.Fatal(err)
	}
	if name != "webapp" {
		t.Errorf("AppName() = %q, want %q", name, "webapp")
	}
}

func TestAppNameManifestWins(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "go.mod"), "module github.com/someone/webapp\n")
	writeFile(t, filepath.Join(project, "Wasmup.toml"), "[package]\nname = \"frontend\"\n")

	name, err := AppName(project)
	if err != nil {
		t.Fatal(err)
	}
	if name != "frontend" {
		t.Errorf("AppName() = %q, want %q", name, "frontend")
	}
}

func TestAppNameEmptyManifestFallsBack(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "go.mod"), "module example.org/app\n")
	writeFile(t, filepath.Join(project, "Wasmup.toml"), "[package]\n")

	name, err := AppName(project)
	if err != nil {
		t.Fatal(err)
	}
	if name != "app" {
		t.Errorf("AppName() = %q, want %q", name, "app")
	}
}

func TestAppNameWithoutGoMod(t *testing.T) {
	if _, err := AppName(t.TempDir()); err == nil {
		t.Error("expected error without go.mod")
	}
}

func TestAppNameInvalidManifest(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "Wasmup.toml"), "[package\n")

	if _, err := AppName(project); err == nil {
		t.Error("expected error for broken Wasmup.toml")
	}
}

func TestDetectStyleMode(t *testing.T) {
	project := t.TempDir()

	mode, err := DetectStyleMode(project)
	if err != nil {
		t.Fatal(err)
	}
	if mode != StyleSass {
		t.Errorf("mode = %v, want sass", mode)
	}

	writeFile(t, filepath.Join(project, "tailwind.config.js"), "module.exports = {}")

	mode, err = DetectStyleMode(project)
	if err != nil {
		t.Fatal(err)
	}
	if mode != StyleTailwind {
		t.Errorf("mode = %v, want tailwind", mode)
	}
}

func TestStyleModeString(t *testing.T) {
	if StyleSass.String() != "sass" || StyleTailwind.String() != "tailwind" {
		t.Error("unexpected StyleMode string values")
	}
}
