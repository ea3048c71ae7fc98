package selectui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCancelled is returned when the user quits a prompt.
var ErrCancelled = errors.New("cancelled by user")

// Prompter runs the interactive selection loop over line-oriented
// input.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// promptState is the explicit state of the retry-until-valid loop.
type promptState int

const (
	stateAwaiting promptState = iota
	stateValidated
	stateCancelled
)

// SelectIndices prompts for a selection expression over n containers
// until one parses. A malformed or out-of-range expression re-prompts;
// "q"/"quit" (or EOF / context cancellation) ends the loop with
// ErrCancelled.
func (p *Prompter) SelectIndices(ctx context.Context, n int) ([]int, error) {
	state := stateAwaiting
	var indices []int
	for state == stateAwaiting {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("SEL_CANCELLED: %w", ErrCancelled)
		}
		fmt.Fprintf(p.out, "Select saves to convert (e.g. 1,3-5 or all, q to quit): ")
		line, ok := p.readLine()
		if !ok {
			state = stateCancelled
			break
		}
		sel, err := ParseSelection(line, n)
		switch {
		case err != nil:
			fmt.Fprintf(p.out, "%v\n", err)
		case sel.Cancelled:
			state = stateCancelled
		default:
			indices = sel.Indices
			state = stateValidated
		}
	}
	if state == stateCancelled {
		return nil, fmt.Errorf("SEL_CANCELLED: %w", ErrCancelled)
	}
	return indices, nil
}

// Confirm asks a yes/no question. Empty input takes the default;
// anything starting with y/Y is yes, n/N is no, anything else
// re-prompts.
func (p *Prompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		if err := ctx.Err(); err != nil {
			return false, fmt.Errorf("SEL_CANCELLED: %w", ErrCancelled)
		}
		fmt.Fprintf(p.out, "%s [%s]: ", question, hint)
		line, ok := p.readLine()
		if !ok {
			return false, fmt.Errorf("SEL_CANCELLED: %w", ErrCancelled)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(p.out, "please answer y or n")
		}
	}
}

func (p *Prompter) readLine() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	return p.scanner.Text(), true
}
