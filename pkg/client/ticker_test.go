package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestLogEntryElapsed(t *testing.T) {
	checkIn := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(90 * time.Minute)
	now := checkIn.Add(3 * time.Hour)

	var none *LogEntry
	if got := none.Elapsed(now); got != 0 {
		t.Fatalf("nil entry elapsed = %v", got)
	}
	open := &LogEntry{CheckIn: checkIn, Status: "Active"}
	if got := open.Elapsed(now); got != 3*time.Hour {
		t.Fatalf("open elapsed = %v", got)
	}
	closed := &LogEntry{CheckIn: checkIn, CheckOut: &checkOut, Status: "Offline"}
	if got := closed.Elapsed(now); got != 90*time.Minute {
		t.Fatalf("closed elapsed = %v", got)
	}
}

func TestElapsedTickerTracksActiveSession(t *testing.T) {
	checkIn := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	var offset atomic.Int64
	now := func() time.Time { return checkIn.Add(time.Duration(offset.Add(int64(time.Second)))) }

	var active atomic.Bool
	active.Store(true)
	entry := &LogEntry{CheckIn: checkIn, Status: "Active"}
	current := func() *LogEntry {
		if active.Load() {
			return entry
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ticks := elapsedTicker(ctx, time.Millisecond, current, now)

	first := <-ticks
	second := <-ticks
	if first <= 0 || second <= first {
		t.Fatalf("expected increasing elapsed values, got %v then %v", first, second)
	}

	active.Store(false)
	// A value computed before the switch may already be buffered.
	deadline := time.After(time.Second)
	for {
		select {
		case got := <-ticks:
			if got == 0 {
				return
			}
		case <-deadline:
			t.Fatal("ticker never emitted zero after session closed")
		}
	}
}

func TestElapsedTickerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := ElapsedTicker(ctx, time.Millisecond, func() *LogEntry { return nil })

	if got := <-ticks; got != 0 {
		t.Fatalf("expected zero without session, got %v", got)
	}
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ticks:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("ticker channel not closed after cancel")
		}
	}
}
