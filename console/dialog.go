package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"phonebook/contact"
)

// Result tells how a modal dialog ended.
type Result int

const (
	Cancelled Result = iota
	Committed
)

func (r Result) String() string {
	if r == Committed {
		return "committed"
	}
	return "cancelled"
}

// NumberInput is what the number dialog commits.
type NumberInput struct {
	Number string
	Type   contact.Type
}

// prompter reads one line per answer. End of input cancels whatever dialog
// is open.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(label string) (string, bool) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		p.eof = true
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimRight(p.in.Text(), "\r"), true
}

// askFiltered re-asks until the answer passes allowed. An empty answer or
// end of input cancels.
func (p *prompter) askFiltered(label, hint string, allowed func(string) bool) (string, Result) {
	for {
		line, ok := p.ask(label)
		if !ok || line == "" {
			return "", Cancelled
		}
		if allowed(line) {
			return line, Committed
		}
		fmt.Fprintln(p.out, hint)
	}
}

// ContactDialog asks for a contact name. Only letters and spaces get through.
func (p *prompter) ContactDialog(title, current string) (string, Result) {
	fmt.Fprintln(p.out, title)
	if current != "" {
		fmt.Fprintf(p.out, "Current name: %s\n", current)
	}
	return p.askFiltered("Name (empty line cancels): ", "Only letters and spaces are allowed.", contact.NameInputAllowed)
}

// NumberDialog asks for a number and its type. The type defaults to current.Type,
// or to mobile for a new number.
func (p *prompter) NumberDialog(title string, current NumberInput) (NumberInput, Result) {
	fmt.Fprintln(p.out, title)
	if current.Number != "" {
		fmt.Fprintf(p.out, "Current number: %s (%s)\n", current.Number, current.Type)
	}
	number, res := p.askFiltered("Number (empty line cancels): ",
		"Only digits with an optional leading + are allowed.", contact.NumberInputAllowed)
	if res == Cancelled {
		return NumberInput{}, Cancelled
	}

	kind := current.Type
	if !kind.Known() {
		kind = contact.Mobile
	}
	types := contact.Types()
	for {
		for i, t := range types {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, t)
		}
		line, ok := p.ask(fmt.Sprintf("Type [%s]: ", kind))
		if !ok {
			return NumberInput{}, Cancelled
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return NumberInput{Number: number, Type: kind}, Committed
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(types) {
			return NumberInput{Number: number, Type: types[n-1]}, Committed
		}
		if t := contact.Type(line); t.Known() {
			return NumberInput{Number: number, Type: t}, Committed
		}
		fmt.Fprintln(p.out, "Pick one of the listed types.")
	}
}
