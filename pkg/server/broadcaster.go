package server

import "sync"

// Broadcaster holds the latest reload token and fans its advancement out to
// any number of connected clients. The orchestrator is the single writer,
// every client connection is a reader. Advancing the token is O(1) and never
// blocks on the number of subscribers.
type Broadcaster struct {
	mu      sync.Mutex
	version uint64
	changed chan struct{}
}

// NewBroadcaster creates a broadcaster with the initial token.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{changed: make(chan struct{})}
}

// Notify advances the reload token, waking every subscriber currently
// waiting on it. Multiple notifications before any client observes them
// collapse into one observable transition.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.version++
	close(b.changed)
	b.changed = make(chan struct{})
}

// Watch returns the current token together with a channel that is closed on
// the next advance. A client that snapshots on attach therefore never
// observes a reload for changes that predate its connection.
func (b *Broadcaster) Watch() (uint64, <-chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.version, b.changed
}
