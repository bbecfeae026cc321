package module

import (
	"testing"
)

// stubModule is a minimal test double that satisfies Module
type stubModule struct {
	name  string
	ports any
}

func (s *stubModule) Ports() any   { return s.ports }
func (s *stubModule) Name() string { return s.name }

var _ Module = (*stubModule)(nil)

// runner is what a cmd pulls out of a module bundle
type runner interface{ Run() int }

type runnerImpl struct{}

func (runnerImpl) Run() int { return 1 }

func TestModule_RegisterThenPortsOf(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	type bundle struct{ Runner runner }
	m := &stubModule{name: "sampler", ports: bundle{Runner: runnerImpl{}}}

	Register(m.Name(), m.Ports())

	got, ok := PortsAs[bundle]("sampler")
	if !ok {
		t.Fatal("expected registered bundle")
	}
	if got.Runner.Run() != 1 {
		t.Fatalf("unexpected runner from registry")
	}
	if MustPortsOf[runner](m).Run() != 1 {
		t.Fatalf("unexpected runner from MustPortsOf")
	}
}
