//go:build !windows

package osproc

import (
	"context"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

func TestSpawnAndAlive(t *testing.T) {
	r := NewRunner()
	pid, err := r.Spawn(context.Background(), SpawnSpec{Binary: "/bin/sleep", Args: []string{"2"}})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer func() { _ = syscall.Kill(pid, syscall.SIGKILL) }()
	if pid <= 0 {
		t.Fatalf("bad pid %d", pid)
	}
	if !r.Alive(pid) {
		t.Fatalf("freshly spawned pid %d not alive", pid)
	}
	if err := r.Signal(pid, SignalTerm); err != nil {
		t.Fatalf("Signal: %v", err)
	}
}

func TestAliveDeadProcess(t *testing.T) {
	r := NewRunner()
	// Spawn something short-lived and wait for it to die.
	cmd := exec.Command("/bin/true")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run /bin/true: %v", err)
	}
	pid := cmd.Process.Pid
	// The pid is reaped; give the kernel a moment regardless.
	deadline := time.Now().Add(time.Second)
	for r.Alive(pid) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if r.Alive(pid) {
		t.Skipf("pid %d still alive (reused?)", pid)
	}
	if r.Alive(0) || r.Alive(-5) {
		t.Fatalf("non-positive pids must never be alive")
	}
}

func TestSpawnCancelledContext(t *testing.T) {
	r := NewRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Spawn(ctx, SpawnSpec{Binary: "/bin/sleep", Args: []string{"1"}}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestSpawnUnknownUser(t *testing.T) {
	r := NewRunner()
	_, err := r.Spawn(context.Background(), SpawnSpec{
		Binary: "/bin/sleep", Args: []string{"1"}, User: "no-such-user-zz",
	})
	if err == nil {
		t.Fatalf("expected error for unknown user")
	}
}

func TestFindByCommand(t *testing.T) {
	r := NewRunner()
	cmd := exec.Command("/bin/sleep", "3")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start sleep: %v", err)
	}
	defer func() { _ = cmd.Process.Kill(); _ = cmd.Wait() }()

	pid, found, err := r.FindByCommand("sleep")
	if err != nil {
		t.Fatalf("FindByCommand: %v", err)
	}
	if !found {
		t.Fatalf("running sleep not found in process table")
	}
	if !r.Alive(pid) {
		t.Fatalf("found pid %d but it is not alive", pid)
	}

	if _, found, err := r.FindByCommand("no-such-binary-zz"); err != nil || found {
		t.Fatalf("unexpected match: found=%v err=%v", found, err)
	}
}
