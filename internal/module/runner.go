package module

import (
	"fmt"
	"strings"

	"bytekit/internal/schema"
)

// RunCase parses a case's input against the command schema and runs it.
func RunCase(cmd Command, c Case) ([]string, error) {
	m, err := schema.Parse(cmd.Schema(), c.Input)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", c.Input, err)
	}
	return cmd.Run(m)
}

// Verify replays a case and compares the output line by line.
func Verify(cmd Command, c Case) error {
	got, err := RunCase(cmd, c)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cmd.Schema().Name, strings.Join(c.Input, " "), err)
	}
	if len(got) != len(c.Output) {
		return fmt.Errorf("%s %s: got %d line(s) %q, want %d line(s) %q",
			cmd.Schema().Name, strings.Join(c.Input, " "), len(got), got, len(c.Output), c.Output)
	}
	for i := range got {
		if got[i] != c.Output[i] {
			return fmt.Errorf("%s %s: line %d = %q, want %q",
				cmd.Schema().Name, strings.Join(c.Input, " "), i+1, got[i], c.Output[i])
		}
	}
	return nil
}
