package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"git.home.luguber.info/inful/mdstream/internal/markdown"
)

// TableCmd prints the transition table for review.
type TableCmd struct {
	stdout io.Writer
}

// Run executes the table command.
func (t *TableCmd) Run(_ *Global) error {
	w := t.stdout
	if w == nil {
		w = os.Stdout
	}
	return writeTable(w)
}

func writeTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-16s %-16s %-16s %s\n", "FROM", "SIGNAL", "TO", "ACTIONS"); err != nil {
		return err
	}
	for _, e := range markdown.Transitions() {
		names := make([]string, 0, len(e.Transition.Actions))
		for _, a := range e.Transition.Actions {
			names = append(names, a.String())
		}
		actions := strings.Join(names, ", ")
		if actions == "" {
			actions = "(echo line)"
		}
		if _, err := fmt.Fprintf(w, "%-16s %-16s %-16s %s\n", e.From, e.Signal, e.Transition.Next, actions); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "any other pair: state unchanged, line echoed as space-joined tokens")
	return err
}
