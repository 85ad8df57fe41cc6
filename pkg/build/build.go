// Package build orchestrates the individual build steps that turn a project
// into a browser-servable dist directory: the markup entry, stylesheets,
// static assets and the WebAssembly binary.
package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/wasmup/wasmup/pkg/tools"
	"github.com/wasmup/wasmup/pkg/utils/gitignore"
	"github.com/wasmup/wasmup/pkg/watch"
)

// Builder runs full and partial builds for one project.
type Builder struct {
	Project string
	App     string
	Style   StyleMode
	Tools   *tools.Toolset
	Filter  *gitignore.GitIgnore
	Logger  zerolog.Logger

	// Progress, when set, receives the compiler's output live during full
	// builds. Dev rebuilds leave it unset and report failures through the
	// logger instead.
	Progress io.Writer
}

// New creates a builder for the project, resolving the application name and
// the stylesheet framework once up front.
func New(project string, ts *tools.Toolset, filter *gitignore.GitIgnore, logger zerolog.Logger) (*Builder, error) {
	app, err := AppName(project)
	if err != nil {
		return nil, err
	}

	style, err := DetectStyleMode(project)
	if err != nil {
		return nil, err
	}

	return &Builder{
		Project: project,
		App:     app,
		Style:   style,
		Tools:   ts,
		Filter:  filter,
		Logger:  logger,
	}, nil
}

// Full builds the project from scratch, recreating the dist directory. The
// dev flag injects the live-reload script into the markup entry.
func (b *Builder) Full(release, dev bool) error {
	dist := filepath.Join(b.Project, "dist")

	if err := os.RemoveAll(dist); err != nil {
		return fmt.Errorf("failed clearing dist directory: %w", err)
	}
	if err := os.Mkdir(dist, 0o755); err != nil {
		return fmt.Errorf("failed creating dist directory: %w", err)
	}

	if err := Index(b.Project, b.App, release, dev); err != nil {
		return err
	}
	b.Logger.Info().Msg("built index.html")

	if err := b.stylesheets(release); err != nil {
		return err
	}
	b.Logger.Info().Stringer("mode", b.Style).Msg("built stylesheets")

	if err := Assets(b.Project, b.Filter); err != nil {
		return err
	}
	b.Logger.Info().Msg("built assets")

	if err := Wasm(b.Project, b.App, release, b.Tools, b.Progress); err != nil {
		return err
	}
	b.Logger.Info().Msg("built WASM files")

	if release {
		reduction, err := MinifyHTML(dist)
		if err != nil {
			return err
		}
		b.Logger.Info().Stringer("reduction", reduction).Msg("minified HTML files")

		reduction, err = MinifyJS(dist)
		if err != nil {
			return err
		}
		b.Logger.Info().Stringer("reduction", reduction).Msg("minified JavaScript files")

		reduction, err = MinifyCSS(dist)
		if err != nil {
			return err
		}
		b.Logger.Info().Stringer("reduction", reduction).Msg("minified stylesheets")
	}

	return nil
}

// Rebuild rebuilds only the part of the project identified by the change.
// Always a dev-mode build, since partial rebuilds only happen while the dev
// server runs.
func (b *Builder) Rebuild(change watch.Change) error {
	// Tailwind scans project files to detect what CSS classes are used, so
	// it has to rerun for markup and source changes as well.
	if b.Style == StyleTailwind && change.Kind != watch.KindStatic {
		if err := Tailwind(b.Project, b.Tools, false); err != nil {
			return err
		}
		b.Logger.Info().Stringer("mode", b.Style).Msg("rebuilt stylesheets")
	}

	switch change.Kind {
	case watch.KindMarkup:
		if err := Index(b.Project, b.App, false, true); err != nil {
			return err
		}
		b.Logger.Info().Msg("rebuilt index.html")
	case watch.KindStylesheet:
		if b.Style == StyleSass {
			if err := Sass(b.Project, b.Tools, false); err != nil {
				return err
			}
			b.Logger.Info().Stringer("mode", b.Style).Msg("rebuilt stylesheets")
		}
	case watch.KindStatic:
		if err := Asset(b.Project, change.Path); err != nil {
			return err
		}
		b.Logger.Info().Msg("rebuilt asset")
	case watch.KindSource:
		if err := Wasm(b.Project, b.App, false, b.Tools, nil); err != nil {
			return err
		}
		b.Logger.Info().Msg("rebuilt WASM files")
	}

	return nil
}

func (b *Builder) stylesheets(release bool) error {
	if b.Style == StyleTailwind {
		return Tailwind(b.Project, b.Tools, release)
	}
	return Sass(b.Project, b.Tools, release)
}
