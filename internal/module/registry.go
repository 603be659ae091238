package module

import (
	"errors"
	"fmt"
	"io"

	"bytekit/internal/schema"
	"bytekit/pkg/logger"
	"bytekit/pkg/version"
)

// ErrCommandFailed marks an error already reported on the error stream by
// Dispatch; callers only need to pick an exit code.
var ErrCommandFailed = errors.New("command failed")

var log = logger.New("registry")

// Builtin is an introspection command that reads the whole Registry, such as
// usage or completion.
type Builtin interface {
	Schema() *schema.Schema
	Run(r *Registry, m *schema.Matches) ([]string, error)
}

type entry struct {
	cmd    Command
	module string
}

// Registry is the ordered, name-keyed table of every command. It is built
// once by NewRegistry and never mutated afterwards.
type Registry struct {
	order    []string
	entries  map[string]entry
	modules  []Module
	builtins []Builtin
}

// NewRegistry registers every module in order, then the builtins. A
// duplicate name or malformed schema is a programming error and panics.
func NewRegistry(modules []Module, builtins ...Builtin) *Registry {
	r := &Registry{entries: make(map[string]entry)}
	for _, b := range builtins {
		name := mustValid(b.Schema())
		for _, other := range r.builtins {
			if other.Schema().Name == name {
				panic(fmt.Sprintf("builtin %s already registered", name))
			}
		}
		r.builtins = append(r.builtins, b)
	}
	for _, m := range modules {
		r.register(m)
	}
	return r
}

func (r *Registry) register(m Module) {
	for _, cmd := range m.Commands() {
		name := mustValid(cmd.Schema())
		if prev, exists := r.entries[name]; exists {
			panic(fmt.Sprintf("command %s of module %s already registered by module %s", name, m.Name, prev.module))
		}
		if r.builtin(name) != nil {
			panic(fmt.Sprintf("command %s of module %s shadows a builtin", name, m.Name))
		}
		for _, c := range cmd.Cases() {
			if !version.NotAfter(c.Since, version.Version) {
				panic(fmt.Sprintf("case %q of %s: since %q is not a release up to %s", c.Desc, name, c.Since, version.Version))
			}
		}
		r.entries[name] = entry{cmd: cmd, module: m.Name}
		r.order = append(r.order, name)
	}
	r.modules = append(r.modules, m)
}

func mustValid(s *schema.Schema) string {
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return s.Name
}

func (r *Registry) builtin(name string) Builtin {
	for _, b := range r.builtins {
		if b.Schema().Name == name {
			return b
		}
	}
	return nil
}

// Schemas returns every command schema in registration order followed by
// the builtins.
func (r *Registry) Schemas() []*schema.Schema {
	out := make([]*schema.Schema, 0, len(r.order)+len(r.builtins))
	for _, name := range r.order {
		out = append(out, r.entries[name].cmd.Schema())
	}
	for _, b := range r.builtins {
		out = append(out, b.Schema())
	}
	return out
}

// Commands returns the registered commands in order, without builtins
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].cmd)
	}
	return out
}

// Lookup returns the command registered under name
func (r *Registry) Lookup(name string) (Command, bool) {
	e, ok := r.entries[name]
	return e.cmd, ok
}

// Modules returns the modules in registration order
func (r *Registry) Modules() []Module {
	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// ModuleOf returns the name of the module that contributed a command
func (r *Registry) ModuleOf(name string) string {
	return r.entries[name].module
}

// Run resolves name and returns its output without printing it.
func (r *Registry) Run(name string, m *schema.Matches) ([]string, error) {
	if b := r.builtin(name); b != nil {
		return b.Run(r, m)
	}
	cmd, ok := r.Lookup(name)
	if !ok {
		// the parser only hands over names taken from Schemas()
		panic(fmt.Sprintf("subcommand %s must exist", name))
	}
	return cmd.Run(m)
}

// Dispatch runs name and prints its output lines to stdout. A failure is
// written to stderr after any lines the command produced, and returned
// wrapped in ErrCommandFailed.
func (r *Registry) Dispatch(name string, m *schema.Matches, stdout, stderr io.Writer) error {
	defer log.Timer("dispatch " + name)()

	lines, err := r.Run(name, m)
	for _, line := range lines {
		fmt.Fprintln(stdout, line)
	}
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		log.Verbosef("%s failed: %v", name, err)
		return fmt.Errorf("%w: %s: %w", ErrCommandFailed, name, err)
	}
	log.Debugf("%s wrote %d line(s)", name, len(lines))
	return nil
}
