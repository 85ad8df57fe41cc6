package build

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Reduction describes the size savings of a minification pass.
type Reduction struct {
	Before int64
	After  int64
}

func (r Reduction) String() string {
	if r.Before == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(r.Before-r.After)/float64(r.Before)*100)
}

// MinifyHTML minifies all HTML files in dist in place.
func MinifyHTML(dist string) (Reduction, error) {
	return minifyGlob(dist, ".html", "text/html", html.Minify)
}

// MinifyJS minifies all JavaScript files in dist in place.
func MinifyJS(dist string) (Reduction, error) {
	return minifyGlob(dist, ".js", "application/javascript", js.Minify)
}

// MinifyCSS minifies all stylesheet files in dist in place.
func MinifyCSS(dist string) (Reduction, error) {
	return minifyGlob(dist, ".css", "text/css", css.Minify)
}

func minifyGlob(dist, ext, mediatype string, fn minify.MinifierFunc) (Reduction, error) {
	m := minify.New()
	m.AddFunc(mediatype, fn)

	var red Reduction
	err := filepath.WalkDir(dist, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		minified, err := m.Bytes(mediatype, data)
		if err != nil {
			return fmt.Errorf("failed minifying %s: %w", path, err)
		}

		red.Before += int64(len(data))
		red.After += int64(len(minified))

		return os.WriteFile(path, minified, 0o644)
	})
	if err != nil {
		return Reduction{}, err
	}
	return red, nil
}
