// Package journal keeps an optional local audit trail of agent actions so
// operators can reconstruct what the cluster manager did to the daemon.
package journal

import (
	"context"
	"time"
)

// Entry is one recorded agent action.
type Entry struct {
	Action     string
	PID        int
	Outcome    string
	Detail     string
	OccurredAt time.Time
}

// Sink persists entries. Implementations must tolerate being called from a
// short-lived process: every Record is immediately durable.
type Sink interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}
