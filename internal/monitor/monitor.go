// File: internal/monitor/monitor.go (complete file)

package monitor

import (
	"context"
	"time"
)

// Flusher is anything that rewrites its output from current state.
type Flusher interface {
	Flush() error
}

type Event struct {
	AtUTC   time.Time
	Kind    string // "flushed" | "error"
	Message string
	Err     error
}

type Options struct {
	Interval time.Duration
}

// Run flushes f once immediately and then on every tick until ctx is done.
// Flushes never overlap: a slow flush delays the next tick instead.
// A failed flush is reported through onEvent and retried on the next tick.
// The shutdown flush belongs to whoever closes f.
func Run(ctx context.Context, f Flusher, opt Options, onEvent func(Event)) {
	if opt.Interval <= 0 {
		opt.Interval = 30 * time.Second
	}
	if onEvent == nil {
		onEvent = func(Event) {}
	}

	ticker := time.NewTicker(opt.Interval)
	defer ticker.Stop()

	flush := func() {
		if err := f.Flush(); err != nil {
			onEvent(Event{
				AtUTC:   time.Now().UTC(),
				Kind:    "error",
				Message: "flush failed",
				Err:     err,
			})
			return
		}
		onEvent(Event{
			AtUTC:   time.Now().UTC(),
			Kind:    "flushed",
			Message: "report flushed",
		})
	}

	flush()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			flush()
		}
	}
}
