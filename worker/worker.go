package worker

import (
	"context"
	"time"
)

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a tick function until ctx is done. A failing tick, which
// includes a tick reporting it found nothing to do, waits ErrDelay before
// the next one.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick blocks until ctx is done
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = time.Second
	}

	if errDelay <= 0 {
		errDelay = delay
	}

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err != nil {
				dur = errDelay
			} else {
				dur = delay
			}
		}
	}
}
