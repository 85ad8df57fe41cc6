package watch

import (
	"path/filepath"
	"strings"
)

// mainStylesheets are the recognized names for the main stylesheet entry,
// relative to the project root.
var mainStylesheets = []string{
	"assets/main.sass",
	"assets/main.scss",
	"assets/main.css",
}

// stylesheetDirs are the recognized stylesheet subtrees of the assets tree.
var stylesheetDirs = []string{
	"assets/sass/",
	"assets/scss/",
	"assets/css/",
}

// Classify maps an absolute path within the project to the part of the
// application that has to be rebuilt. Rules are evaluated in order, first
// match wins. It is a pure function and safe for concurrent use.
func Classify(project, fullPath string) Change {
	rel, err := filepath.Rel(project, fullPath)
	if err != nil {
		// Only happens for paths outside the project, which are never
		// watched in the first place. Treat as source to stay total.
		return Change{Kind: KindSource}
	}
	rel = filepath.ToSlash(rel)

	switch {
	case rel == "index.html":
		return Change{Kind: KindMarkup}
	case isStylesheet(rel):
		return Change{Kind: KindStylesheet}
	case strings.HasPrefix(rel, "assets/"):
		return Change{Kind: KindStatic, Path: fullPath}
	default:
		return Change{Kind: KindSource}
	}
}

func isStylesheet(rel string) bool {
	for _, main := range mainStylesheets {
		if rel == main {
			return true
		}
	}
	for _, dir := range stylesheetDirs {
		if strings.HasPrefix(rel, dir) {
			return true
		}
	}
	return false
}
