//go:build !windows

package osproc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"

	gops "github.com/shirou/gopsutil/v4/process"
)

// UnixRunner is the real Runner backed by fork/exec and kill(2).
type UnixRunner struct{}

func NewRunner() UnixRunner { return UnixRunner{} }

func (UnixRunner) Spawn(ctx context.Context, spec SpawnSpec) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	// Deliberately not CommandContext: the daemon must outlive this
	// invocation, not die with it.
	// #nosec G204
	cmd := exec.Command(spec.Binary, spec.Args...)
	null, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, err
	}
	defer func() { _ = null.Close() }()
	cmd.Stdin = null
	cmd.Stdout = null
	cmd.Stderr = null

	attr := &syscall.SysProcAttr{Setpgid: true}
	if cred, err := credentialFor(spec.User); err != nil {
		return 0, err
	} else if cred != nil {
		attr.Credential = cred
	}
	cmd.SysProcAttr = attr

	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// The daemon outlives this invocation; release it so no Wait is owed.
	_ = cmd.Process.Release()
	return pid, nil
}

// credentialFor resolves name to a Credential, or nil when the daemon
// should simply inherit the invoking user.
func credentialFor(name string) (*syscall.Credential, error) {
	if name == "" {
		return nil, nil
	}
	u, err := user.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", name, err)
	}
	if u.Uid == strconv.Itoa(os.Getuid()) {
		return nil, nil
	}
	uid, err := strconv.ParseUint(u.Uid, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("uid of %q: %w", name, err)
	}
	gid, err := strconv.ParseUint(u.Gid, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("gid of %q: %w", name, err)
	}
	return &syscall.Credential{Uid: uint32(uid), Gid: uint32(gid)}, nil
}

func (UnixRunner) Signal(pid int, sig syscall.Signal) error {
	return syscall.Kill(pid, sig)
}

func (UnixRunner) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

func (UnixRunner) FindByCommand(binary string) (int, bool, error) {
	base := filepath.Base(binary)
	procs, err := gops.Processes()
	if err != nil {
		return 0, false, err
	}
	self := os.Getpid()
	for _, p := range procs {
		if int(p.Pid) == self {
			continue
		}
		if argv, err := p.CmdlineSlice(); err == nil && len(argv) > 0 {
			if argv[0] == binary || filepath.Base(argv[0]) == base {
				return int(p.Pid), true, nil
			}
		}
		if name, err := p.Name(); err == nil && name == base {
			return int(p.Pid), true, nil
		}
	}
	return 0, false, nil
}
