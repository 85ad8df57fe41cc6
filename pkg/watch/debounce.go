package watch

import (
	"time"

	"github.com/rs/zerolog"
)

// debouncer throttles the rapid-fire stream of change events a single save
// or compile can produce. An incoming change is stored in a map together
// with its arrival time; further changes of the same kind arriving in the
// meantime are simply dropped, so the first-seen timestamp bounds the
// worst-case latency even under a continuous burst. On every sweep tick,
// entries that aged past the window are taken out of the map and emitted.
type debouncer struct {
	in       <-chan Change
	out      chan Change
	window   time.Duration
	sweep    time.Duration
	shutdown chan struct{}
	pending  map[Change]time.Time
	logger   zerolog.Logger
}

// DebounceHandle controls the debouncer running in a background goroutine.
type DebounceHandle struct {
	out      chan Change
	shutdown chan struct{}
	done     chan struct{}
}

// Changes returns the channel that delivers debounced change events, at most
// one per category per quiet period. It is closed when the debouncer shuts
// down.
func (h *DebounceHandle) Changes() <-chan Change {
	return h.out
}

// Shutdown signals the background debouncer to stop and waits until it has
// fully exited. Pending entries are discarded.
func (h *DebounceHandle) Shutdown() {
	select {
	case h.shutdown <- struct{}{}:
	case <-h.done:
	}
	<-h.done
}

// Debounce coalesces the change events from in, emitting each distinct
// change at most once per window. The input channel closing is treated the
// same as an explicit shutdown.
func Debounce(in <-chan Change, window, sweep time.Duration, logger zerolog.Logger) *DebounceHandle {
	if window <= 0 {
		window = DefaultWindow
	}
	if sweep <= 0 {
		sweep = DefaultSweep
	}

	d := &debouncer{
		in:       in,
		out:      make(chan Change, channelSize),
		window:   window,
		sweep:    sweep,
		shutdown: make(chan struct{}),
		pending:  make(map[Change]time.Time),
		logger:   logger,
	}

	h := &DebounceHandle{
		out:      d.out,
		shutdown: d.shutdown,
		done:     make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		defer close(d.out)
		d.run()
	}()

	return h
}

func (d *debouncer) run() {
	ticker := time.NewTicker(d.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-d.shutdown:
			d.logger.Debug().Msg("debouncer shut down")
			return
		case change, ok := <-d.in:
			if !ok {
				d.logger.Debug().Msg("debouncer input closed")
				return
			}
			// keep the first-seen timestamp, repeats don't reset the timer
			if _, seen := d.pending[change]; !seen {
				d.pending[change] = time.Now()
			}
		case <-ticker.C:
			if !d.flushExpired() {
				return
			}
		}
	}
}

// flushExpired emits every pending entry that aged past the window. It
// reports false when the debouncer was shut down while emitting.
func (d *debouncer) flushExpired() bool {
	now := time.Now()
	for change, seen := range d.pending {
		if now.Sub(seen) < d.window {
			continue
		}
		delete(d.pending, change)

		d.logger.Trace().Stringer("change", change).Msg("sending change")
		select {
		case d.out <- change:
		case <-d.shutdown:
			return false
		}
	}
	return true
}
