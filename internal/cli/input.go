package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// prompter reads answers from the command input. A single prompter must be
// used per input so that buffered lines are not lost between prompts.
type prompter struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, r: bufio.NewReader(in), out: out}
}

// line prints prompt and reads one trimmed line. EOF after partial input
// returns the partial line.
func (p *prompter) line(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	s, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(s) > 0 {
			return strings.TrimSpace(s), nil
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// secret prints prompt and reads a line without echo when the input is a
// terminal. Only the trailing line break is removed, so leading and trailing
// spaces remain part of the password.
func (p *prompter) secret(prompt string) (string, error) {
	if f, ok := p.in.(*os.File); ok && isTerminal(int(f.Fd())) {
		if _, err := fmt.Fprint(p.out, prompt); err != nil {
			return "", err
		}
		b, err := readPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	s, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(s) > 0) {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// confirm asks a yes/no question; anything but y or yes is no.
func (p *prompter) confirm(prompt string) (bool, error) {
	s, err := p.line(prompt + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
