// Package osproc isolates every OS interaction the supervisor needs:
// spawning the daemon, delivering signals, probing liveness and scanning
// the process table. The Runner interface keeps the reconciliation logic
// testable without real processes.
package osproc

import (
	"context"
	"syscall"
)

// Signals the supervisor delivers.
const (
	SignalProbe = syscall.Signal(0)
	SignalTerm  = syscall.SIGTERM
	SignalKill  = syscall.SIGKILL
)

// SpawnSpec describes one daemon launch.
type SpawnSpec struct {
	Binary string
	Args   []string
	User   string // OS user to run as; empty means the current user
}

// Runner is the capability surface over the OS process layer.
type Runner interface {
	// Spawn starts the daemon detached with stdio on the null device and
	// returns its PID.
	Spawn(ctx context.Context, spec SpawnSpec) (int, error)
	// Signal delivers sig to pid.
	Signal(pid int, sig syscall.Signal) error
	// Alive reports whether pid names a live process. A process we lack
	// permission to signal still counts as alive.
	Alive(pid int) bool
	// FindByCommand scans the process table for a process running the
	// given binary and returns its PID when found.
	FindByCommand(binary string) (int, bool, error)
}
