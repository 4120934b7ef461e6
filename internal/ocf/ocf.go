// Package ocf implements the resource-agent side of the OCF contract:
// exit codes, action names and the OCF_RESKEY_* environment surface the
// cluster manager populates before invoking the agent.
package ocf

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ExitCode is an OCF resource-agent exit code as consumed by the cluster
// manager. The values are fixed by the contract.
type ExitCode int

const (
	Success          ExitCode = 0
	ErrGeneric       ExitCode = 1
	ErrArgs          ExitCode = 2
	ErrUnimplemented ExitCode = 3
	ErrPerm          ExitCode = 4
	ErrInstalled     ExitCode = 5
	ErrConfigured    ExitCode = 6
	NotRunning       ExitCode = 7
)

func (c ExitCode) String() string {
	switch c {
	case Success:
		return "success"
	case ErrGeneric:
		return "generic error"
	case ErrArgs:
		return "invalid arguments"
	case ErrUnimplemented:
		return "unimplemented"
	case ErrPerm:
		return "insufficient permissions"
	case ErrInstalled:
		return "not installed"
	case ErrConfigured:
		return "not configured"
	case NotRunning:
		return "not running"
	default:
		return fmt.Sprintf("exit code %d", int(c))
	}
}

// Actions the agent implements. Anything else is unimplemented.
const (
	ActionStart       = "start"
	ActionStop        = "stop"
	ActionStatus      = "status"
	ActionMonitor     = "monitor"
	ActionValidate    = "validate"
	ActionValidateAll = "validate-all"
	ActionMetaData    = "meta-data"
	ActionUsage       = "usage"
)

// Error carries an exit code alongside a message so handlers can report
// contract-level outcomes (not-running, not-installed) as ordinary errors.
type Error struct {
	Code ExitCode
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return e.Msg
}

// Errorf builds an *Error with a formatted message.
func Errorf(code ExitCode, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf maps an error to the exit code the process should terminate with.
// nil means success; errors that do not carry a code are generic failures.
func CodeOf(err error) ExitCode {
	if err == nil {
		return Success
	}
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Code
	}
	return ErrGeneric
}

// ResKey returns the value of OCF_RESKEY_<name>. OCF parameter names are
// lowercase and case-sensitive, so no normalization is applied.
func ResKey(name string) string {
	return os.Getenv("OCF_RESKEY_" + name)
}

// ResourceInstance returns the instance name the cluster manager assigned
// to this resource, or a fallback when invoked outside a cluster manager.
func ResourceInstance() string {
	if v := os.Getenv("OCF_RESOURCE_INSTANCE"); v != "" {
		return v
	}
	return "default"
}

// RSCTmpDir returns the runtime temp dir the cluster manager provides for
// resource agents (HA_RSCTMP), falling back to /var/run/resource-agents.
func RSCTmpDir() string {
	if v := os.Getenv("HA_RSCTMP"); v != "" {
		return v
	}
	return "/var/run/resource-agents"
}

// MetaTimeout returns the operation timeout the cluster manager configured
// for the current action (OCF_RESKEY_CRM_meta_timeout, milliseconds).
// ok is false when the variable is absent or unparseable.
func MetaTimeout() (time.Duration, bool) {
	v := os.Getenv("OCF_RESKEY_CRM_meta_timeout")
	if v == "" {
		return 0, false
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

// IsProbe reports whether the current invocation is a probe: a monitor
// call with interval 0, issued to discover state rather than to watch it.
func IsProbe(action string) bool {
	if action != ActionMonitor && action != ActionStatus {
		return false
	}
	return os.Getenv("OCF_RESKEY_CRM_meta_interval") == "0"
}
