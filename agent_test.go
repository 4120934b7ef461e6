package agent

import (
	"io"
	"log/slog"
	"testing"

	"github.com/Zipfer/ocf-neutron-agent/internal/ocf"
)

func TestNewWiresFileStore(t *testing.T) {
	h := Handle{Binary: "neutron-dhcp-agent", PIDFile: t.TempDir() + "/agent.pid"}
	sup := New(h, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if sup == nil || sup.Handle.Binary != "neutron-dhcp-agent" {
		t.Fatalf("supervisor not assembled: %+v", sup)
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(nil) != ocf.Success {
		t.Fatalf("nil must map to success")
	}
	if CodeOf(ocf.Errorf(ocf.NotRunning, "x")) != ocf.NotRunning {
		t.Fatalf("code lost through facade")
	}
}
