// Package supervisor reconciles the observed state of the supervised daemon
// (running / not running) with the state the cluster manager requested.
// The PID record is the single source of truth for which process to check.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/user"
	"runtime"
	"time"

	"github.com/Zipfer/ocf-neutron-agent/internal/config"
	"github.com/Zipfer/ocf-neutron-agent/internal/journal"
	"github.com/Zipfer/ocf-neutron-agent/internal/ocf"
	"github.com/Zipfer/ocf-neutron-agent/internal/osproc"
	"github.com/Zipfer/ocf-neutron-agent/internal/pidrec"
)

const (
	// DefaultPollInterval paces the start-side polling loop.
	DefaultPollInterval = time.Second
	// StopSafetyMargin is subtracted from the caller-supplied operation
	// timeout to leave room for escalation and cleanup.
	StopSafetyMargin = 5 * time.Second
	// DefaultStopTimeout applies when the caller supplied no timeout.
	DefaultStopTimeout = 15 * time.Second
)

// Supervisor drives one daemon instance. Operations are synchronous and the
// caller must not overlap them; no locking is done here.
type Supervisor struct {
	Handle config.Handle
	Store  pidrec.Store
	Runner osproc.Runner
	Log    *slog.Logger

	// Journal, when set, records every completed action. Journal failures
	// never change an action's outcome.
	Journal journal.Sink

	// Hook is a reserved cleanup extension point run at the start preamble
	// and the stop epilogue. Nil means no-op.
	Hook func() error

	// PollInterval overrides DefaultPollInterval (tests use a short one).
	PollInterval time.Duration

	// StopTimeout overrides the caller-supplied operation timeout; zero
	// means derive it from the environment.
	StopTimeout time.Duration

	// Overridable for tests.
	lookPath   func(string) (string, error)
	lookupUser func(string) (*user.User, error)
	statFile   func(string) (os.FileInfo, error)
}

// New builds a Supervisor with the real OS bindings.
func New(h config.Handle, store pidrec.Store, runner osproc.Runner, log *slog.Logger) *Supervisor {
	return &Supervisor{
		Handle:     h,
		Store:      store,
		Runner:     runner,
		Log:        log,
		lookPath:   exec.LookPath,
		lookupUser: user.Lookup,
		statFile:   os.Stat,
	}
}

// Status derives the observed state fresh on every call.
//
// A stale record (file present, process dead) is reported as not running
// but deliberately left in place; only Stop removes it. A crashed and
// restarted daemon can therefore collide with a reused PID; that behavior
// is inherited and kept.
func (s *Supervisor) Status() error {
	rec, ok, err := s.Store.Load()
	if err != nil {
		return fmt.Errorf("read pid record: %w", err)
	}
	if !ok {
		pid, found, err := s.Runner.FindByCommand(s.Handle.Binary)
		if err != nil {
			return fmt.Errorf("scan process table: %w", err)
		}
		if !found {
			return ocf.Errorf(ocf.NotRunning, "%s is not running", s.Handle.BinaryName())
		}
		// An unmanaged instance is running; adopt it.
		s.Log.Warn("adopting unmanaged running instance", "pid", pid)
		rec = pidrec.Record{PID: pid}
		if err := s.Store.Save(rec); err != nil {
			return fmt.Errorf("save adopted pid record: %w", err)
		}
	}
	if !s.Runner.Alive(rec.PID) {
		s.Log.Debug("pid record is stale", "pid", rec.PID)
		return ocf.Errorf(ocf.NotRunning, "%s (pid %d) is not running", s.Handle.BinaryName(), rec.PID)
	}
	return nil
}

// Monitor is the recurring variant of Status; same semantics.
func (s *Supervisor) Monitor() error { return s.Status() }

// Start brings the daemon up. Idempotent: an already-running daemon is
// success without a second spawn. Polling is unbounded; the caller-imposed
// operation timeout (via ctx) is the backstop.
func (s *Supervisor) Start(ctx context.Context) error {
	switch err := s.Status(); ocf.CodeOf(err) {
	case ocf.Success:
		s.Log.Info("already running, nothing to do")
		s.journal(ctx, ocf.ActionStart, s.recordedPID(), nil, "already running")
		return nil
	case ocf.NotRunning:
		// expected, proceed
	default:
		return fmt.Errorf("pre-start status: %w", err)
	}

	if err := s.runHook(); err != nil {
		return fmt.Errorf("cleanup hook: %w", err)
	}

	pid, err := s.Runner.Spawn(ctx, osproc.SpawnSpec{
		Binary: s.Handle.Binary,
		Args:   s.Handle.Args(),
		User:   s.Handle.User,
	})
	if err != nil {
		err = fmt.Errorf("spawn %s: %w", s.Handle.BinaryName(), err)
		s.journal(ctx, ocf.ActionStart, 0, err, "")
		return err
	}
	s.Log.Info("spawned daemon", "pid", pid, "user", s.Handle.User)
	if err := s.Store.Save(pidrec.Record{PID: pid}); err != nil {
		return fmt.Errorf("save pid record: %w", err)
	}

	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	for {
		err := s.Monitor()
		switch ocf.CodeOf(err) {
		case ocf.Success:
			s.Log.Info("daemon is running", "pid", pid)
			s.journal(ctx, ocf.ActionStart, pid, nil, "")
			return nil
		case ocf.NotRunning:
			// keep waiting for the daemon to come up
		default:
			err = fmt.Errorf("monitor during start: %w", err)
			s.journal(ctx, ocf.ActionStart, pid, err, "")
			return err
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("start interrupted: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}

// Stop takes the daemon down, escalating from SIGTERM to a single SIGKILL
// at the shutdown deadline. Once escalation has been attempted the
// operation succeeds regardless of whether the process is confirmed dead.
func (s *Supervisor) Stop(ctx context.Context) error {
	switch err := s.Status(); ocf.CodeOf(err) {
	case ocf.NotRunning:
		s.Log.Info("already stopped, nothing to do")
		if err := s.finishStop(); err != nil {
			return err
		}
		s.journal(ctx, ocf.ActionStop, 0, nil, "already stopped")
		return nil
	case ocf.Success:
		// running, proceed
	default:
		return fmt.Errorf("pre-stop status: %w", err)
	}

	rec, ok, err := s.Store.Load()
	if err != nil {
		return fmt.Errorf("read pid record for stop: %w", err)
	}
	if !ok {
		return fmt.Errorf("pid record vanished during stop")
	}
	if err := s.Runner.Signal(rec.PID, osproc.SignalTerm); err != nil {
		// Delivery failure (e.g. permissions) is fatal, not retried.
		err = fmt.Errorf("send SIGTERM to pid %d: %w", rec.PID, err)
		s.journal(ctx, ocf.ActionStop, rec.PID, err, "")
		return err
	}
	s.Log.Info("sent SIGTERM", "pid", rec.PID)

	deadline := time.Now().Add(s.stopDeadline())
	stopped, err := pollUntil(ctx, deadline, time.Second, func() (bool, error) {
		err := s.Status()
		switch ocf.CodeOf(err) {
		case ocf.NotRunning:
			return true, nil
		case ocf.Success:
			return false, nil
		default:
			return false, err
		}
	})
	if err != nil {
		return fmt.Errorf("status during stop: %w", err)
	}

	detail := ""
	if !stopped {
		// Deadline elapsed: force termination once and move on without
		// further polling.
		s.Log.Warn("shutdown deadline elapsed, sending SIGKILL", "pid", rec.PID)
		_ = s.Runner.Signal(rec.PID, osproc.SignalKill)
		detail = "escalated to SIGKILL"
	}
	if err := s.finishStop(); err != nil {
		return err
	}
	s.Log.Info("daemon stopped", "pid", rec.PID)
	s.journal(ctx, ocf.ActionStop, rec.PID, nil, detail)
	return nil
}

// finishStop runs the cleanup hook and removes the PID record. Stop is the
// only operation allowed to delete the record, stale or not.
func (s *Supervisor) finishStop() error {
	if err := s.runHook(); err != nil {
		return fmt.Errorf("cleanup hook: %w", err)
	}
	if err := s.Store.Remove(); err != nil {
		return fmt.Errorf("remove pid record: %w", err)
	}
	return nil
}

// stopDeadline derives the shutdown deadline from the caller-supplied
// operation timeout minus a safety margin, with a fixed default.
func (s *Supervisor) stopDeadline() time.Duration {
	if s.StopTimeout > 0 {
		return s.StopTimeout
	}
	if t, ok := ocf.MetaTimeout(); ok {
		if d := t - StopSafetyMargin; d > 0 {
			return d
		}
	}
	return DefaultStopTimeout
}

// Validate checks the daemon's prerequisites without side effects. During a
// probe a missing config file is tolerated with a warning: shared storage
// may not be mounted yet on this node.
func (s *Supervisor) Validate(probe bool) error {
	if _, err := s.lookPath(s.Handle.Binary); err != nil {
		return ocf.Errorf(ocf.ErrInstalled, "binary %q not found on PATH: %v", s.Handle.Binary, err)
	}
	if err := s.checkProcTable(); err != nil {
		return ocf.Errorf(ocf.ErrInstalled, "liveness probe unavailable: %v", err)
	}
	for _, cfg := range []string{s.Handle.ConfigFile, s.Handle.AgentConfigFile} {
		if cfg == "" {
			continue
		}
		if _, err := s.statFile(cfg); err != nil {
			if probe {
				s.Log.Warn("config missing during probe, tolerated", "path", cfg)
				continue
			}
			return ocf.Errorf(ocf.ErrInstalled, "config %q not found", cfg)
		}
	}
	if s.Handle.User != "" {
		if _, err := s.lookupUser(s.Handle.User); err != nil {
			return ocf.Errorf(ocf.ErrInstalled, "user %q does not exist", s.Handle.User)
		}
	}
	return nil
}

// checkProcTable verifies the process-table scan prerequisite.
func (s *Supervisor) checkProcTable() error {
	if runtime.GOOS != "linux" {
		return nil
	}
	_, err := s.statFile("/proc")
	return err
}

func (s *Supervisor) runHook() error {
	if s.Hook == nil {
		return nil
	}
	return s.Hook()
}

func (s *Supervisor) recordedPID() int {
	rec, ok, err := s.Store.Load()
	if err != nil || !ok {
		return 0
	}
	return rec.PID
}

func (s *Supervisor) journal(ctx context.Context, action string, pid int, opErr error, detail string) {
	if s.Journal == nil {
		return
	}
	outcome := "success"
	if opErr != nil {
		outcome = ocf.CodeOf(opErr).String()
		if detail == "" {
			detail = opErr.Error()
		}
	}
	e := journal.Entry{Action: action, PID: pid, Outcome: outcome, Detail: detail, OccurredAt: time.Now()}
	if err := s.Journal.Record(ctx, e); err != nil {
		s.Log.Warn("journal write failed", "error", err)
	}
}
