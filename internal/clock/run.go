package clock

import (
	"context"
	"time"
)

// Run steps q once per interval until ctx is done.
func Run(ctx context.Context, q *FrameQueue, interval time.Duration) error {
	if interval <= 0 {
		return ErrInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			q.Step(now)
		}
	}
}
