package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/wasmup/wasmup/pkg/utils/gitignore"
)

// projectWatcher handles raw file system events from fsnotify. It takes care
// of watching newly created files and folders, unwatching deleted ones, and
// adjusting to renames. The watch set is only ever touched from the event
// loop goroutine.
type projectWatcher struct {
	project  string
	fw       *fsnotify.Watcher
	filter   *gitignore.GitIgnore
	changes  chan Change
	shutdown chan struct{}
	logger   zerolog.Logger
}

// Handle controls the file watcher running in a background goroutine. It
// allows receiving change events over a channel, and can shut the watcher
// down again.
type Handle struct {
	changes  chan Change
	shutdown chan struct{}
	done     chan struct{}

	// kept for tests, only the event loop mutates the watch set
	fw *fsnotify.Watcher
}

// Changes returns the channel that delivers classified change events.
// It is closed when the watcher shuts down.
func (h *Handle) Changes() <-chan Change {
	return h.changes
}

// Shutdown signals the background watcher to stop and waits until it has
// fully exited and released all OS watch handles.
func (h *Handle) Shutdown() {
	select {
	case h.shutdown <- struct{}{}:
	case <-h.done:
	}
	<-h.done
}

// Watch creates a watcher over the given project, delivering change events
// for its different components. The project's .gitignore is taken into
// account for the initial scan as well as any paths showing up later.
//
// The initial recursive scan failing is the only fatal condition. All later
// per-event failures are logged and skipped.
func Watch(project string, filter *gitignore.GitIgnore, logger zerolog.Logger) (*Handle, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}

	if err := seed(fw, project, filter); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &projectWatcher{
		project:  project,
		fw:       fw,
		filter:   filter,
		changes:  make(chan Change, channelSize),
		shutdown: make(chan struct{}),
		logger:   logger,
	}

	h := &Handle{
		changes:  w.changes,
		shutdown: w.shutdown,
		done:     make(chan struct{}),
		fw:       fw,
	}

	go func() {
		defer close(h.done)
		defer close(w.changes)
		defer func() {
			if err := fw.Close(); err != nil {
				w.logger.Error().Err(err).Msg("failed closing file watcher")
			}
		}()

		for {
			select {
			case <-w.shutdown:
				w.logger.Debug().Msg("watcher shut down")
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if !w.handleEvent(ev) {
					w.logger.Debug().Msg("watcher shut down")
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Error().Err(err).Msg("fs event error")
			}
		}
	}()

	return h, nil
}

// seed registers a non-recursive watch on every directory and file under the
// project root, honoring the ignore filter. Watching files individually (not
// just directories) means later created subdirectories must be added
// explicitly, which handleEvent takes care of.
func seed(fw *fsnotify.Watcher, project string, filter *gitignore.GitIgnore) error {
	err := filepath.WalkDir(project, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != project && filter.Matched(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return fw.Add(path)
	})
	if err != nil {
		return fmt.Errorf("failed scanning project %s: %w", project, err)
	}
	return nil
}

// handleEvent converts a single fsnotify event into a classified change,
// keeping the watch set in sync with the file system first, so a consumer
// reacting to a change can rely on the path already being watched.
//
// fsnotify delivers renames as a Rename event for the old path followed by a
// Create event for the new path, so both sides end up classified and
// forwarded independently.
//
// It reports false when the shutdown signal was observed while forwarding.
func (w *projectWatcher) handleEvent(ev fsnotify.Event) bool {
	switch {
	case ev.Op.Has(fsnotify.Create):
		w.addPath(ev.Name)
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		w.removePath(ev.Name)
	case ev.Op.Has(fsnotify.Write):
	case ev.Op.Has(fsnotify.Chmod):
		// metadata changes aren't important to us
		return true
	default:
		w.logger.Debug().Str("op", ev.Op.String()).Str("path", ev.Name).Msg("unhandled event kind")
		return true
	}

	if w.filter.Matched(ev.Name, isDir(ev.Name)) {
		return true
	}

	return w.forward(Classify(w.project, ev.Name))
}

// forward pushes the change downstream instead of blocking forever on a
// stopped consumer. It reports false when the shutdown signal arrived while
// waiting on a full channel; the event loop then exits right away, since the
// signal is sent exactly once.
func (w *projectWatcher) forward(change Change) bool {
	select {
	case w.changes <- change:
		w.logger.Trace().Stringer("change", change).Msg("forwarded change")
		return true
	case <-w.shutdown:
		return false
	}
}

// addPath registers a watch for the path unless the ignore filter excludes
// it. A single unwatchable path must not abort the run, so failures are only
// logged.
func (w *projectWatcher) addPath(path string) {
	if w.filter.Matched(path, isDir(path)) {
		return
	}
	if err := w.fw.Add(path); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("failed adding path to watcher")
	}
}

// removePath unregisters the watch for the path. The path may already be
// gone, so failures are only logged.
func (w *projectWatcher) removePath(path string) {
	if err := w.fw.Remove(path); err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("failed removing path from watcher")
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
