package build

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wasmup/wasmup/pkg/utils/gitignore"
)

// stylesheetPath reports whether the path, relative to the assets tree,
// belongs to the stylesheet component and is therefore not a static asset.
func stylesheetPath(rel string) bool {
	rel = filepath.ToSlash(rel)
	switch {
	case rel == "main.sass", rel == "main.scss", rel == "main.css":
		return true
	case strings.HasPrefix(rel, "sass/"), strings.HasPrefix(rel, "scss/"), strings.HasPrefix(rel, "css/"):
		return true
	default:
		return false
	}
}

// Assets copies the whole assets tree into dist, excluding stylesheet paths
// and anything matched by the ignore filter. A project without an assets
// directory is fine.
func Assets(project string, filter *gitignore.GitIgnore) error {
	assets := filepath.Join(project, "assets")
	dist := filepath.Join(project, "dist")

	err := filepath.WalkDir(assets, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == assets && os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if path == assets {
			return nil
		}

		rel, err := filepath.Rel(assets, path)
		if err != nil {
			return err
		}

		if stylesheetPath(rel) || filter.Matched(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		return copyFile(path, filepath.Join(dist, rel))
	})
	if err != nil {
		return fmt.Errorf("failed copying assets: %w", err)
	}
	return nil
}

// Asset syncs a single static asset into dist: copied when it exists,
// removed from dist when it was deleted from the project.
func Asset(project, fullPath string) error {
	rel, err := filepath.Rel(filepath.Join(project, "assets"), fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("path %s is not within the assets directory", fullPath)
	}

	target := filepath.Join(project, "dist", rel)

	info, err := os.Stat(fullPath)
	switch {
	case err == nil && info.IsDir():
		return os.MkdirAll(target, 0o755)
	case err == nil:
		return copyFile(fullPath, target)
	case os.IsNotExist(err):
		// asset was deleted, drop the build artifact as well
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed removing asset artifact: %w", err)
		}
		return nil
	default:
		return err
	}
}

func copyFile(source, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(target)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
