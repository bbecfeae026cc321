package validate

import (
	"testing"

	perr "stratsampler/internal/platform/errors"
	kit "stratsampler/internal/platform/testkit"
)

type opts struct {
	Level  int    `env:"SAMPLER_DEBUG_LEVEL" validate:"min=0,max=2"`
	Layout string `env:"SAMPLER_TIME_LAYOUT" validate:"required,time_layout"`
	Plain  string `validate:"omitempty,min=2"`
}

func TestStruct_OK(t *testing.T) {
	if err := Struct(opts{Level: 1, Layout: "2006-01-02 15:04:05"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_MaxUsesEnvNameAndShortMessage(t *testing.T) {
	err := Struct(opts{Level: 3, Layout: "2006-01-02 15:04:05"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("code = %v, want validation (%v)", perr.CodeOf(err), err)
	}
	e, _ := perr.As(err)
	if e.Field() != "SAMPLER_DEBUG_LEVEL" {
		t.Fatalf("field = %q", e.Field())
	}
	kit.MustContain(t, err.Error(), "SAMPLER_DEBUG_LEVEL must be at most 2")
}

func TestStruct_MinMessage(t *testing.T) {
	err := Struct(opts{Level: -1, Layout: "2006-01-02 15:04:05"})
	kit.MustContain(t, err.Error(), "SAMPLER_DEBUG_LEVEL must be at least 0")
}

func TestStruct_TimeLayout(t *testing.T) {
	err := Struct(opts{Layout: "2006-01-02"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
	kit.MustContain(t, err.Error(), "SAMPLER_TIME_LAYOUT must be a Go time layout")
}

func TestStruct_FieldNameFallsBackToGoName(t *testing.T) {
	err := Struct(opts{Layout: "2006-01-02 15:04:05", Plain: "x"})
	e, ok := perr.As(err)
	if !ok || e.Field() != "Plain" {
		t.Fatalf("expected Plain field error, got %v", err)
	}
}

func TestStruct_InvalidTarget(t *testing.T) {
	err := Struct(42)
	if !perr.IsCode(err, perr.ErrorCodeUnknown) {
		t.Fatalf("non-struct should be an internal error, got %v", perr.CodeOf(err))
	}
}

func TestIsTimeLayout(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2006-01-02 15:04:05", true},
		{"2006-01-02T15:04:05Z07:00", true},
		{"02/01/2006 3PM", true},
		{"2006-01-02", false},
		{"15:04", false},
		{"", false},
		{"not a layout", false},
	}
	for _, c := range cases {
		if got := IsTimeLayout(c.in); got != c.want {
			t.Fatalf("IsTimeLayout(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFieldAndMessage_Nil(t *testing.T) {
	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("expected empty, got %q %q", f, m)
	}
}
