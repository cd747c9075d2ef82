package prompt_test

import (
	"strings"
	"testing"

	"github.com/aorozco-g/arch-setup/prompt"
)

func TestTerminalConfirm(t *testing.T) {
	tests := []struct {
		input   string
		def     bool
		want    bool
		wantErr bool
	}{
		{"y\n", false, true, false},
		{"yes\n", false, true, false},
		{"n\n", true, false, false},
		{"no\n", true, false, false},
		{"\n", true, true, false},
		{"\n", false, false, false},
		{"maybe\n", false, false, true},
	}
	for _, tt := range tests {
		var out strings.Builder
		p := prompt.NewTerminal(strings.NewReader(tt.input), &out)
		got, err := p.Confirm("reboot now?", tt.def)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Confirm(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Confirm(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, def=%v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
		if !strings.Contains(out.String(), "reboot now?") {
			t.Errorf("prompt text not written: %q", out.String())
		}
	}
}

func TestTerminalSelect(t *testing.T) {
	var out strings.Builder
	p := prompt.NewTerminal(strings.NewReader("2\n"), &out)

	got, err := p.Select("pick a network", []string{"home", "office", "guest"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != "office" {
		t.Errorf("Select = %q, want %q", got, "office")
	}
	if !strings.Contains(out.String(), "1) home") || !strings.Contains(out.String(), "3) guest") {
		t.Errorf("options not listed: %q", out.String())
	}
}

func TestTerminalSelectRejectsBadChoice(t *testing.T) {
	for _, input := range []string{"0\n", "4\n", "x\n"} {
		p := prompt.NewTerminal(strings.NewReader(input), &strings.Builder{})
		if _, err := p.Select("pick", []string{"a", "b", "c"}); err == nil {
			t.Errorf("Select(%q): expected error", input)
		}
	}
}

func TestTerminalInputDefault(t *testing.T) {
	p := prompt.NewTerminal(strings.NewReader("\n"), &strings.Builder{})
	got, err := p.Input("hostname", "archbox")
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if got != "archbox" {
		t.Errorf("Input = %q, want default %q", got, "archbox")
	}
}

func TestTerminalSecretFallsBackWithoutTTY(t *testing.T) {
	p := prompt.NewTerminal(strings.NewReader("hunter2\n"), &strings.Builder{})
	got, err := p.Secret("wifi password")
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("Secret = %q, want %q", got, "hunter2")
	}
}

func TestScriptReplaysAnswers(t *testing.T) {
	s := prompt.NewScript("y", "office", "myhost", "hunter2")

	ok, err := s.Confirm("reboot?", false)
	if err != nil || !ok {
		t.Errorf("Confirm = %v, %v; want true, nil", ok, err)
	}

	net, err := s.Select("network", []string{"home", "office"})
	if err != nil || net != "office" {
		t.Errorf("Select = %q, %v; want office, nil", net, err)
	}

	host, err := s.Input("hostname", "archbox")
	if err != nil || host != "myhost" {
		t.Errorf("Input = %q, %v; want myhost, nil", host, err)
	}

	secret, err := s.Secret("password")
	if err != nil || secret != "hunter2" {
		t.Errorf("Secret = %q, %v; want hunter2, nil", secret, err)
	}

	if _, err := s.Secret("again"); err == nil {
		t.Error("expected script exhausted error")
	}
}

func TestScriptSelectRejectsUnknownAnswer(t *testing.T) {
	s := prompt.NewScript("cafe")
	if _, err := s.Select("network", []string{"home", "office"}); err == nil {
		t.Error("expected error for answer outside options")
	}
}
