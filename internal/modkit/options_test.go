package modkit

import "testing"

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" {
		t.Fatalf("default Name = %q, want empty", b.Name)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
}

func TestBuild_WithOptions(t *testing.T) {
	t.Parallel()

	type ports struct {
		X int
		Y string
	}
	p := ports{X: 7, Y: "ok"}

	b := Build(WithName("sampler"), nil, WithPorts(p))
	if b.Name != "sampler" {
		t.Fatalf("Name = %q, want sampler", b.Name)
	}
	if got, ok := b.Ports.(ports); !ok || got != p {
		t.Fatalf("Ports mismatch after Build: %#v", b.Ports)
	}
}

func TestBuild_LastPortsWins(t *testing.T) {
	t.Parallel()

	b := Build(WithPorts(1), WithPorts("two"))
	if got, ok := b.Ports.(string); !ok || got != "two" {
		t.Fatalf("Ports = %#v, want \"two\"", b.Ports)
	}
}
