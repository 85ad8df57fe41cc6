// Package gitignore provides parsing and matching of .gitignore patterns,
// used to decide which project paths are excluded from watching and
// classification.
package gitignore

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// GitIgnore is a compiled set of gitignore patterns, rooted at the project
// directory. The zero value matches nothing.
type GitIgnore struct {
	root     string
	patterns []pattern
}

// pattern is a single parsed gitignore rule.
type pattern struct {
	text     string
	negate   bool
	dirOnly  bool
	anchored bool
}

// Load builds the ignore filter for the given project directory from its
// .gitignore file, plus a hard-coded rule excluding version control
// metadata (.git/).
//
// A missing .gitignore simply yields the built-in rule alone. Any other read
// failure is returned and should abort startup, all later lookups are
// infallible.
func Load(project string) (*GitIgnore, error) {
	gi := &GitIgnore{
		root:     project,
		patterns: []pattern{parseLine(".git/")},
	}

	file, err := os.Open(filepath.Join(project, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return gi, nil
		}
		return nil, fmt.Errorf("failed opening .gitignore: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gi.patterns = append(gi.patterns, parseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading .gitignore: %w", err)
	}

	return gi, nil
}

// Len returns the number of loaded patterns, including the built-in rule.
func (gi *GitIgnore) Len() int {
	return len(gi.patterns)
}

// Matched reports whether the given path is excluded. Paths are matched
// relative to the project root; paths outside of it are never excluded.
// The last matching pattern wins, so later negations override earlier rules.
func (gi *GitIgnore) Matched(p string, isDir bool) bool {
	if gi == nil || len(gi.patterns) == 0 {
		return false
	}

	rel := filepath.ToSlash(p)
	if gi.root != "" && filepath.IsAbs(p) {
		r, err := filepath.Rel(gi.root, p)
		if err != nil || strings.HasPrefix(r, "..") {
			return false
		}
		rel = filepath.ToSlash(r)
	}

	ignored := false
	for _, pat := range gi.patterns {
		if pat.match(rel, isDir) {
			ignored = !pat.negate
		}
	}
	return ignored
}

func parseLine(line string) pattern {
	p := pattern{}

	if strings.HasPrefix(line, "!") {
		p.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	// a slash anywhere in the pattern anchors it to the root as well
	if strings.Contains(line, "/") {
		p.anchored = true
	}

	p.text = line
	return p
}

// match reports whether the rule applies to the given slash-separated path,
// relative to the project root.
func (p pattern) match(rel string, isDir bool) bool {
	if p.anchored {
		if ok, _ := path.Match(p.text, rel); ok {
			return !p.dirOnly || isDir
		}
		// directory rules also cover everything below the directory
		return matchPrefix(p.text, rel)
	}

	// unanchored: match the basename, or any ancestor directory segment so
	// files below an ignored directory are excluded as well
	if ok, _ := path.Match(p.text, path.Base(rel)); ok {
		return !p.dirOnly || isDir
	}

	dir := path.Dir(rel)
	if dir == "." {
		return false
	}
	for _, seg := range strings.Split(dir, "/") {
		if ok, _ := path.Match(p.text, seg); ok {
			return true
		}
	}
	return false
}

// matchPrefix reports whether rel lies under a directory matched by the
// (possibly wildcarded) anchored pattern.
func matchPrefix(pat, rel string) bool {
	patParts := strings.Split(pat, "/")
	relParts := strings.Split(rel, "/")
	if len(relParts) <= len(patParts) {
		return false
	}
	for i, pp := range patParts {
		if ok, _ := path.Match(pp, relParts[i]); !ok {
			return false
		}
	}
	return true
}
