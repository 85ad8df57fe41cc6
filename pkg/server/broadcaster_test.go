package server

import (
	"testing"
	"time"
)

func TestBroadcasterNotifyWakesWatcher(t *testing.T) {
	b := NewBroadcaster()

	before, changed := b.Watch()
	b.Notify()

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("watcher not woken by Notify")
	}

	after, _ := b.Watch()
	if after != before+1 {
		t.Fatalf("token = %d, want %d", after, before+1)
	}
}

func TestBroadcasterLateJoinerSeesNothingStale(t *testing.T) {
	b := NewBroadcaster()

	b.Notify()
	b.Notify()

	// attaching after the notifications must not observe them
	_, changed := b.Watch()
	select {
	case <-changed:
		t.Fatal("late joiner observed a stale notification")
	default:
	}
}

func TestBroadcasterCollapsesNotifications(t *testing.T) {
	b := NewBroadcaster()

	_, changed := b.Watch()
	b.Notify()
	b.Notify()
	b.Notify()

	// all three advances collapse into one observable transition
	<-changed
	version, next := b.Watch()
	if version != 3 {
		t.Fatalf("token = %d, want 3", version)
	}
	select {
	case <-next:
		t.Fatal("fresh channel already closed")
	default:
	}
}

func TestBroadcasterManyWatchers(t *testing.T) {
	b := NewBroadcaster()

	const n = 8
	woken := make(chan struct{}, n)
	for range n {
		_, changed := b.Watch()
		go func() {
			<-changed
			woken <- struct{}{}
		}()
	}

	b.Notify()

	for range n {
		select {
		case <-woken:
		case <-time.After(time.Second):
			t.Fatal("not all watchers woken")
		}
	}
}
