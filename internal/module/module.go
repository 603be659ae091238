// Package module defines the building blocks every bytekit subcommand is made
// of and the Registry that assembles them into one CLI surface.
//
// A Module groups related Commands. A Command pairs a schema.Schema with a
// pure transformation and the Cases (worked examples) that exercise it. The
// same Cases feed the usage documentation and the regression tests, so an
// example is written once and checked forever.
package module

import (
	"slices"

	"bytekit/internal/schema"
)

// Case is one worked example of a command. Cases are shared read-only
// between the usage generator and the test runner.
type Case struct {
	Desc   string
	Input  []string
	Output []string
	// IsExample puts the case in generated usage text
	IsExample bool
	// IsTest replays the case as a regression test; Output must then be
	// exactly what the command prints for Input
	IsTest bool
	// Since is the version that introduced the behavior
	Since string
}

// RunFunc is a pure transformation from validated arguments to output lines.
// Semantically invalid input is reported as an error, never a panic.
type RunFunc func(m *schema.Matches) ([]string, error)

// Command is one dispatchable subcommand
type Command interface {
	// Schema returns the same descriptor on every call
	Schema() *schema.Schema
	Run(m *schema.Matches) ([]string, error)
	Cases() []Case
}

type command struct {
	schema *schema.Schema
	run    RunFunc
	cases  []Case
}

// NewCommand binds a schema, its transformation and its cases
func NewCommand(s *schema.Schema, run RunFunc, cases []Case) Command {
	return &command{schema: s, run: run, cases: cases}
}

func (c *command) Schema() *schema.Schema { return c.schema }

func (c *command) Run(m *schema.Matches) ([]string, error) { return c.run(m) }

func (c *command) Cases() []Case { return slices.Clone(c.cases) }

// Module is a named group of related commands
type Module struct {
	Name        string
	Description string
	// Commands is a pure factory; every call returns equivalent commands
	Commands func() []Command
}

// Cases returns the module's cases keyed by command name
func (m Module) Cases() map[string][]Case {
	out := make(map[string][]Case)
	for _, c := range m.Commands() {
		out[c.Schema().Name] = c.Cases()
	}
	return out
}
