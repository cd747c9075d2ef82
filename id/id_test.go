package id_test

import (
	"testing"

	"github.com/aorozco-g/arch-setup/id"
)

func TestNewRunID(t *testing.T) {
	a := id.NewRunID()
	b := id.NewRunID()

	if a.IsNil() || b.IsNil() {
		t.Fatal("NewRunID returned nil ID")
	}
	if a.String() == b.String() {
		t.Errorf("expected unique IDs, both were %q", a)
	}
	if a.Prefix() != id.PrefixRun {
		t.Errorf("prefix = %q, want %q", a.Prefix(), id.PrefixRun)
	}
}

func TestParseRoundTrip(t *testing.T) {
	orig := id.NewRunID()

	parsed, err := id.ParseRunID(orig.String())
	if err != nil {
		t.Fatalf("ParseRunID: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip = %q, want %q", parsed, orig)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "not a typeid", "job_01h2xcejqtf2nbrexx3vqjhp41"} {
		if _, err := id.ParseRunID(s); err == nil {
			t.Errorf("ParseRunID(%q): expected error", s)
		}
	}
}

func TestNilID(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Error("Nil.IsNil() = false")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", id.Nil.String())
	}
}
