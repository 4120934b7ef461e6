package supervisor

import (
	"context"
	"time"
)

// pollUntil invokes cond every interval until it reports done, fails, the
// deadline elapses, or ctx is cancelled. It returns (false, nil) when the
// deadline elapsed with cond still unsatisfied. The first check happens
// after one interval: callers have just acted and the state needs time to
// settle.
func pollUntil(ctx context.Context, deadline time.Time, interval time.Duration, cond func() (bool, error)) (bool, error) {
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}
		wait := interval
		if wait > remaining {
			wait = remaining
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(wait):
		}
		done, err := cond()
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
	}
}
