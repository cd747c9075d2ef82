// Package prompt is the interactive input port for setup steps. Steps
// that need user decisions (reboot confirmation, Wi-Fi credentials)
// depend on the Prompter interface; the Terminal implementation reads
// from the controlling terminal and Script replays canned answers in
// tests and non-interactive runs.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for input.
type Prompter interface {
	// Confirm asks a yes/no question. Empty input returns def.
	Confirm(question string, def bool) (bool, error)
	// Select asks the user to pick one of options by number.
	Select(question string, options []string) (string, error)
	// Input asks for a free-form line. Empty input returns def.
	Input(question, def string) (string, error)
	// Secret asks for a line without echoing it.
	Secret(question string) (string, error)
}

// Terminal prompts on an interactive terminal.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// Ensure both implementations satisfy the port.
var (
	_ Prompter = (*Terminal)(nil)
	_ Prompter = (*Script)(nil)
)

// NewTerminal creates a Prompter over in/out. When in is os.Stdin and
// the process has a terminal, Secret disables echo.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Terminal{in: bufio.NewReader(in), out: out, fd: fd}
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("prompt: read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(t.out, "%s [%s] ", question, hint)

	answer, err := t.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("prompt: unrecognized answer %q", answer)
	}
}

// Select implements Prompter.
func (t *Terminal) Select(question string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("prompt: no options to select from")
	}

	fmt.Fprintln(t.out, question)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(t.out, "choice [1-%d]: ", len(options))

	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return "", fmt.Errorf("prompt: invalid choice %q", answer)
	}
	return options[n-1], nil
}

// Input implements Prompter.
func (t *Terminal) Input(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", question)
	}

	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Secret implements Prompter. Echo is disabled only when the input is
// a real terminal; otherwise it degrades to a plain line read.
func (t *Terminal) Secret(question string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", question)

	if t.fd >= 0 && term.IsTerminal(t.fd) {
		raw, err := term.ReadPassword(t.fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("prompt: read secret: %w", err)
		}
		return string(raw), nil
	}
	return t.readLine()
}

// Script replays queued answers in order. It is used for tests and for
// non-interactive runs where every question has a preset answer.
type Script struct {
	answers []string
}

// NewScript creates a Script with the given answers.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

func (s *Script) next() (string, error) {
	if len(s.answers) == 0 {
		return "", fmt.Errorf("prompt: script exhausted")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

// Confirm pops the next answer; "y"/"yes" is true, "" is def.
func (s *Script) Confirm(_ string, def bool) (bool, error) {
	a, err := s.next()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(a) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Select pops the next answer and returns it verbatim when it matches
// one of options.
func (s *Script) Select(_ string, options []string) (string, error) {
	a, err := s.next()
	if err != nil {
		return "", err
	}
	for _, opt := range options {
		if opt == a {
			return opt, nil
		}
	}
	return "", fmt.Errorf("prompt: scripted answer %q not in options", a)
}

// Input pops the next answer; "" returns def.
func (s *Script) Input(_ string, def string) (string, error) {
	a, err := s.next()
	if err != nil {
		return "", err
	}
	if a == "" {
		return def, nil
	}
	return a, nil
}

// Secret pops the next answer.
func (s *Script) Secret(_ string) (string, error) {
	return s.next()
}
