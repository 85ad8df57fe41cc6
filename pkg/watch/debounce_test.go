package watch

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func recvChange(t *testing.T, ch <-chan Change, timeout time.Duration) Change {
	t.Helper()
	select {
	case c, ok := <-ch:
		if !ok {
			t.Fatal("channel closed while waiting for change")
		}
		return c
	case <-time.After(timeout):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func expectNoChange(t *testing.T, ch <-chan Change, wait time.Duration) {
	t.Helper()
	select {
	case c, ok := <-ch:
		if ok {
			t.Fatalf("unexpected change %v", c)
		}
	case <-time.After(wait):
	}
}

func TestDebounceCollapsesBurst(t *testing.T) {
	in := make(chan Change, channelSize)
	h := Debounce(in, 50*time.Millisecond, 10*time.Millisecond, zerolog.Nop())
	defer h.Shutdown()

	for range 5 {
		in <- Change{Kind: KindSource}
	}

	got := recvChange(t, h.Changes(), time.Second)
	if got != (Change{Kind: KindSource}) {
		t.Fatalf("got %v, want source change", got)
	}

	expectNoChange(t, h.Changes(), 100*time.Millisecond)
}

func TestDebounceSeparateBursts(t *testing.T) {
	in := make(chan Change, channelSize)
	h := Debounce(in, 30*time.Millisecond, 10*time.Millisecond, zerolog.Nop())
	defer h.Shutdown()

	in <- Change{Kind: KindMarkup}
	first := recvChange(t, h.Changes(), time.Second)
	if first != (Change{Kind: KindMarkup}) {
		t.Fatalf("got %v, want markup change", first)
	}

	in <- Change{Kind: KindMarkup}
	second := recvChange(t, h.Changes(), time.Second)
	if second != (Change{Kind: KindMarkup}) {
		t.Fatalf("got %v, want markup change", second)
	}
}

func TestDebounceKeepsDistinctChanges(t *testing.T) {
	in := make(chan Change, channelSize)
	h := Debounce(in, 30*time.Millisecond, 10*time.Millisecond, zerolog.Nop())
	defer h.Shutdown()

	want := map[Change]bool{
		{Kind: KindSource}:                              true,
		{Kind: KindStylesheet}:                          true,
		{Kind: KindStatic, Path: "/p/assets/a.png"}:     true,
		{Kind: KindStatic, Path: "/p/assets/b/c.woff2"}: true,
	}
	for c := range want {
		in <- c
		in <- c
	}

	got := make(map[Change]bool)
	for range want {
		got[recvChange(t, h.Changes(), time.Second)] = true
	}

	for c := range want {
		if !got[c] {
			t.Errorf("missing change %v", c)
		}
	}
	expectNoChange(t, h.Changes(), 80*time.Millisecond)
}

func TestDebounceInputCloseShutsDown(t *testing.T) {
	in := make(chan Change)
	h := Debounce(in, 30*time.Millisecond, 10*time.Millisecond, zerolog.Nop())

	close(in)

	select {
	case _, ok := <-h.Changes():
		if ok {
			t.Fatal("expected closed output channel")
		}
	case <-time.After(time.Second):
		t.Fatal("output channel not closed after input close")
	}

	// Shutdown after the goroutine already exited must not hang.
	h.Shutdown()
}

func TestDebounceShutdownJoins(t *testing.T) {
	in := make(chan Change, 1)
	h := Debounce(in, time.Hour, 10*time.Millisecond, zerolog.Nop())

	in <- Change{Kind: KindSource}
	h.Shutdown()

	if _, ok := <-h.Changes(); ok {
		t.Fatal("expected no change after shutdown")
	}
}
