// Package watch monitors a project's source files and assets to determine
// which part of the application has to be rebuilt.
//
// Changed paths are categorized as follows and delivered as [Change] values:
//   - Markup: index.html
//   - Stylesheet: assets/main.{sass,scss,css} or anything under
//     assets/{sass,scss,css}
//   - Static: any other file under assets/, copied as-is without processing
//   - Source: every remaining file, since it may be embedded or otherwise
//     pulled into the compiled binary
package watch

import (
	"fmt"
	"time"
)

// channelSize is the capacity of every message channel used by the watcher
// and debouncer. Small on purpose, so a slow consumer stalls the producer
// instead of growing memory without bound.
const channelSize = 16

// Default timing for the debouncer.
const (
	// DefaultWindow is the quiet period a pending change has to age before
	// it is emitted.
	DefaultWindow = 2 * time.Second
	// DefaultSweep is the interval at which pending changes are checked for
	// expiry.
	DefaultSweep = 500 * time.Millisecond
)

// Kind identifies what part of the project a changed path belongs to.
type Kind uint8

const (
	// KindMarkup is the index.html entry file.
	KindMarkup Kind = iota
	// KindStylesheet is the main stylesheet or anything under a stylesheet
	// subtree of assets/.
	KindStylesheet
	// KindStatic is any other file under assets/.
	KindStatic
	// KindSource is every remaining file.
	KindSource
)

// Change identifies what part of the project was modified on disk.
//
// Path is only set for KindStatic, so that distinct assets stay distinct and
// only the one asset is rebuilt. Change is comparable and used directly as a
// map key by the debouncer.
type Change struct {
	Kind Kind
	Path string
}

func (c Change) String() string {
	switch c.Kind {
	case KindMarkup:
		return "markup"
	case KindStylesheet:
		return "stylesheet"
	case KindStatic:
		return fmt.Sprintf("static:%s", c.Path)
	case KindSource:
		return "source"
	default:
		return fmt.Sprintf("unknown(%d)", c.Kind)
	}
}
