package client

import (
	"context"
	"time"
)

// ElapsedTicker emits the elapsed time of the session returned by current,
// once immediately and then every interval, until ctx is cancelled. It emits
// zero while there is no active session. The channel is closed on return.
func ElapsedTicker(ctx context.Context, interval time.Duration, current func() *LogEntry) <-chan time.Duration {
	return elapsedTicker(ctx, interval, current, time.Now)
}

func elapsedTicker(ctx context.Context, interval time.Duration, current func() *LogEntry, now func() time.Time) <-chan time.Duration {
	out := make(chan time.Duration, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			var elapsed time.Duration
			if entry := current(); entry.Active() {
				elapsed = entry.Elapsed(now())
			}
			select {
			case out <- elapsed:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
