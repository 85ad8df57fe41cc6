package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wasmup/wasmup/pkg/utils/gitignore"
)

// newTestProject lays out a minimal project tree under a temp dir and returns
// its root. filepath.EvalSymlinks keeps event paths comparable on systems
// where the temp dir is behind a symlink.
func newTestProject(t *testing.T, ignore string) string {
	t.Helper()

	project, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"assets", "internal"} {
		if err := os.Mkdir(filepath.Join(project, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(project, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(project, "main.go"), []byte("package main"), 0o644); err != nil {
		t.Fatal(err)
	}
	if ignore != "" {
		if err := os.WriteFile(filepath.Join(project, ".gitignore"), []byte(ignore), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return project
}

func newTestWatcher(t *testing.T, project string) *Handle {
	t.Helper()

	filter, err := gitignore.Load(project)
	if err != nil {
		t.Fatal(err)
	}

	h, err := Watch(project, filter, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Shutdown)

	return h
}

// waitFor drains the change channel until the wanted change shows up. A
// single file operation may surface as more than one raw event, so earlier
// duplicates are skipped.
func waitFor(t *testing.T, h *Handle, want Change) {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case got, ok := <-h.Changes():
			if !ok {
				t.Fatal("change channel closed")
			}
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v", want)
		}
	}
}

func TestWatchSourceChange(t *testing.T) {
	project := newTestProject(t, "")
	h := newTestWatcher(t, project)

	if err := os.WriteFile(filepath.Join(project, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, h, Change{Kind: KindSource})
}

func TestWatchMarkupChange(t *testing.T) {
	project := newTestProject(t, "")
	h := newTestWatcher(t, project)

	if err := os.WriteFile(filepath.Join(project, "index.html"), []byte("<html>x</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, h, Change{Kind: KindMarkup})
}

func TestWatchCreatedAssetEntersWatchSet(t *testing.T) {
	project := newTestProject(t, "")
	h := newTestWatcher(t, project)

	logo := filepath.Join(project, "assets", "logo.png")
	if err := os.WriteFile(logo, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, h, Change{Kind: KindStatic, Path: logo})

	if !slices.Contains(h.fw.WatchList(), logo) {
		t.Errorf("created asset %s missing from watch set", logo)
	}
}

func TestWatchRemovedAssetLeavesWatchSet(t *testing.T) {
	project := newTestProject(t, "")

	logo := filepath.Join(project, "assets", "logo.png")
	if err := os.WriteFile(logo, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}

	h := newTestWatcher(t, project)

	if err := os.Remove(logo); err != nil {
		t.Fatal(err)
	}

	waitFor(t, h, Change{Kind: KindStatic, Path: logo})

	if slices.Contains(h.fw.WatchList(), logo) {
		t.Errorf("removed asset %s still in watch set", logo)
	}
}

func TestWatchRenameReportsBothSides(t *testing.T) {
	project := newTestProject(t, "")
	h := newTestWatcher(t, project)

	oldPath := filepath.Join(project, "main.go")
	newPath := filepath.Join(project, "app.go")
	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatal(err)
	}

	// old and new name both classify as a source change
	waitFor(t, h, Change{Kind: KindSource})
	waitFor(t, h, Change{Kind: KindSource})

	list := h.fw.WatchList()
	if slices.Contains(list, oldPath) {
		t.Errorf("old path %s still in watch set", oldPath)
	}
	if !slices.Contains(list, newPath) {
		t.Errorf("new path %s missing from watch set", newPath)
	}
}

func TestWatchIgnoredPathsProduceNoChanges(t *testing.T) {
	project := newTestProject(t, "dist/\n*.log\n")

	dist := filepath.Join(project, "dist")
	if err := os.Mkdir(dist, 0o755); err != nil {
		t.Fatal(err)
	}

	h := newTestWatcher(t, project)

	if slices.Contains(h.fw.WatchList(), dist) {
		t.Errorf("ignored dir %s in watch set", dist)
	}

	if err := os.WriteFile(filepath.Join(project, "debug.log"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// a real change afterwards proves the ignored one was dropped, not delayed
	if err := os.WriteFile(filepath.Join(project, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case got, ok := <-h.Changes():
			if !ok {
				t.Fatal("change channel closed")
			}
			if got == (Change{Kind: KindSource}) {
				return
			}
			t.Fatalf("unexpected change %v before the source change", got)
		case <-deadline:
			t.Fatal("timed out waiting for source change")
		}
	}
}

func TestWatchShutdownWithStalledConsumer(t *testing.T) {
	project := newTestProject(t, "")

	filter, err := gitignore.Load(project)
	if err != nil {
		t.Fatal(err)
	}
	h, err := Watch(project, filter, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	// produce more changes than the channel buffers while nothing reads
	// Changes(), so the event loop ends up blocked on the send
	for i := range 40 {
		name := filepath.Join(project, fmt.Sprintf("gen%d.go", i))
		if err := os.WriteFile(name, []byte("package main"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(200 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		h.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("shutdown did not complete with a stalled consumer")
	}
}

func TestWatchShutdownClosesChannel(t *testing.T) {
	project := newTestProject(t, "")

	filter, err := gitignore.Load(project)
	if err != nil {
		t.Fatal(err)
	}
	h, err := Watch(project, filter, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	h.Shutdown()

	if _, ok := <-h.Changes(); ok {
		t.Fatal("change channel still open after shutdown")
	}

	// a second Shutdown must not hang
	h.Shutdown()
}
