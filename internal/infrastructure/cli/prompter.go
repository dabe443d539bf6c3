package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sami-lachheb/local-warp/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Enabled indicates the prompter is interactive.
func (p *Prompter) Enabled() bool {
	return true
}

// Confirm shows the proposed command and blocks until the user answers
// yes or no. Unrecognized input repeats the question; there is no
// silent default either way.
func (p *Prompter) Confirm(command string, warnings []string) (bool, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Proposed command:")
	fmt.Fprintf(p.out, "  $ %s\n", command)
	for _, warning := range warnings {
		fmt.Fprintf(p.out, "  ! %s\n", warning)
	}
	fmt.Fprintln(p.out)

	for {
		fmt.Fprint(p.out, "Execute this command? [y/n]: ")
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if err != nil {
				return false, err
			}
			fmt.Fprintln(p.out, "Please enter 'y' or 'n'.")
		}
	}
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
