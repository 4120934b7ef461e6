// Package agent exposes the resource agent's supervisor for embedding in
// other tooling (test harnesses, fleet automation).
package agent

import (
	"log/slog"

	"github.com/Zipfer/ocf-neutron-agent/internal/config"
	"github.com/Zipfer/ocf-neutron-agent/internal/ocf"
	"github.com/Zipfer/ocf-neutron-agent/internal/osproc"
	"github.com/Zipfer/ocf-neutron-agent/internal/pidrec"
	"github.com/Zipfer/ocf-neutron-agent/internal/supervisor"
)

// Re-export core types for external consumers. These are aliases so
// conversions are zero-cost.

type Handle = config.Handle

type Supervisor = supervisor.Supervisor

type PIDStore = pidrec.Store

type ExitCode = ocf.ExitCode

// LoadHandle resolves the daemon handle from the OCF environment and the
// optional defaults file.
func LoadHandle() (Handle, error) { return config.Load() }

// New builds a supervisor over the real OS process layer with a file-backed
// PID record.
func New(h Handle, log *slog.Logger) *Supervisor {
	return supervisor.New(h, pidrec.File{Path: h.PIDFile}, osproc.NewRunner(), log)
}

// NewWithStore builds a supervisor with a caller-supplied PID record store,
// for tests and embedders that fake the filesystem.
func NewWithStore(h Handle, store PIDStore, runner osproc.Runner, log *slog.Logger) *Supervisor {
	return supervisor.New(h, store, runner, log)
}

// CodeOf maps an operation error to the OCF exit code for it.
func CodeOf(err error) ExitCode { return ocf.CodeOf(err) }
