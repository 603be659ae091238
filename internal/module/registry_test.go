package module

import (
	"bytes"
	stdErrors "errors"
	"strings"
	"testing"

	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

func echoModule(name string, cmds ...string) Module {
	return Module{
		Name:        name,
		Description: name + " commands",
		Commands: func() []Command {
			out := make([]Command, 0, len(cmds))
			for _, c := range cmds {
				out = append(out, NewCommand(&schema.Schema{
					Name: c,
					Args: []schema.Arg{{Name: "INPUT", Required: true}},
				}, func(m *schema.Matches) ([]string, error) {
					in := m.Value("INPUT")
					if in == "bad" {
						return []string{"partial"}, e.New(e.ErrInvalidInput, "bad input")
					}
					return []string{in, strings.ToUpper(in)}, nil
				}, []Case{{Desc: "echo", Input: []string{"a"}, Output: []string{"a", "A"}, IsTest: true, Since: "0.1.0"}}))
			}
			return out
		},
	}
}

func sinceModule(since string) Module {
	return Module{Name: "s", Commands: func() []Command {
		return []Command{NewCommand(&schema.Schema{Name: "s"},
			func(*schema.Matches) ([]string, error) { return nil, nil },
			[]Case{{Desc: "future", Since: since}})}
	}}
}

type fakeBuiltin struct {
	name string
	seen *Registry
}

func (b *fakeBuiltin) Schema() *schema.Schema { return &schema.Schema{Name: b.name} }

func (b *fakeBuiltin) Run(r *Registry, _ *schema.Matches) ([]string, error) {
	b.seen = r
	return []string{strings.Join(names(r), ",")}, nil
}

func names(r *Registry) []string {
	var out []string
	for _, s := range r.Schemas() {
		out = append(out, s.Name)
	}
	return out
}

func TestRegistryOrder(t *testing.T) {
	usage, completion := &fakeBuiltin{name: "usage"}, &fakeBuiltin{name: "completion"}
	r := NewRegistry([]Module{echoModule("b", "zz", "aa"), echoModule("a", "mm")}, usage, completion)

	want := "zz,aa,mm,usage,completion"
	if got := strings.Join(names(r), ","); got != want {
		t.Errorf("Schemas() order = %s, want %s", got, want)
	}
	if len(r.Commands()) != 3 {
		t.Errorf("Commands() should exclude builtins, got %d", len(r.Commands()))
	}
	if r.ModuleOf("mm") != "a" || r.ModuleOf("zz") != "b" {
		t.Error("ModuleOf returned the wrong module")
	}
	if mods := r.Modules(); len(mods) != 2 || mods[0].Name != "b" {
		t.Errorf("Modules() = %+v", mods)
	}
}

func TestRegistrySchemaIsStable(t *testing.T) {
	r := NewRegistry([]Module{echoModule("m", "x")})
	cmd, ok := r.Lookup("x")
	if !ok {
		t.Fatal("x not registered")
	}
	if cmd.Schema() != cmd.Schema() || r.Schemas()[0] != cmd.Schema() {
		t.Error("Schema() must return the same descriptor")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"across modules", func() { NewRegistry([]Module{echoModule("a", "x"), echoModule("b", "x")}) }},
		{"within module", func() { NewRegistry([]Module{echoModule("a", "x", "x")}) }},
		{"shadows builtin", func() { NewRegistry([]Module{echoModule("a", "usage")}, &fakeBuiltin{name: "usage"}) }},
		{"duplicate builtin", func() { NewRegistry(nil, &fakeBuiltin{name: "usage"}, &fakeBuiltin{name: "usage"}) }},
		{"invalid schema", func() { NewRegistry([]Module{echoModule("a", "")}) }},
		{"unreleased since", func() { NewRegistry([]Module{sinceModule("99.0.0")}) }},
		{"missing since", func() { NewRegistry([]Module{sinceModule("")}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestDispatch(t *testing.T) {
	usage := &fakeBuiltin{name: "usage"}
	r := NewRegistry([]Module{echoModule("m", "echo")}, usage)

	t.Run("success", func(t *testing.T) {
		var out, errOut bytes.Buffer
		m, _ := schema.Parse(r.Schemas()[0], []string{"hi"})
		if err := r.Dispatch("echo", m, &out, &errOut); err != nil {
			t.Fatalf("Dispatch() error: %v", err)
		}
		if out.String() != "hi\nHI\n" {
			t.Errorf("stdout = %q", out.String())
		}
		if errOut.Len() != 0 {
			t.Errorf("stderr = %q", errOut.String())
		}
	})

	t.Run("domain error", func(t *testing.T) {
		var out, errOut bytes.Buffer
		m, _ := schema.Parse(r.Schemas()[0], []string{"bad"})
		err := r.Dispatch("echo", m, &out, &errOut)
		if !stdErrors.Is(err, ErrCommandFailed) {
			t.Fatalf("Dispatch() = %v, want ErrCommandFailed", err)
		}
		if e.CodeOf(err) != e.ErrInvalidInput {
			t.Errorf("code = %s, want %s", e.CodeOf(err), e.ErrInvalidInput)
		}
		if out.String() != "partial\n" {
			t.Errorf("lines produced before the failure should be flushed, got %q", out.String())
		}
		if errOut.String() != "bad input\n" {
			t.Errorf("stderr = %q", errOut.String())
		}
	})

	t.Run("builtin", func(t *testing.T) {
		var out bytes.Buffer
		if err := r.Dispatch("usage", nil, &out, &out); err != nil {
			t.Fatal(err)
		}
		if usage.seen != r {
			t.Error("builtin should receive the registry")
		}
		if out.String() != "echo,usage\n" {
			t.Errorf("stdout = %q", out.String())
		}
	})

	t.Run("every name dispatches", func(t *testing.T) {
		for _, s := range r.Schemas() {
			m, err := schema.Parse(s, []string{"x"}[:len(s.Args)])
			if err != nil {
				t.Fatalf("%s: %v", s.Name, err)
			}
			var out bytes.Buffer
			if err := r.Dispatch(s.Name, m, &out, &out); err != nil {
				t.Errorf("%s: %v", s.Name, err)
			}
		}
	})

	t.Run("unknown name panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic for an unregistered name")
			}
		}()
		_ = r.Dispatch("nope", nil, &bytes.Buffer{}, &bytes.Buffer{})
	})
}

func TestModuleCases(t *testing.T) {
	m := echoModule("m", "a", "b")
	cases := m.Cases()
	if len(cases) != 2 || len(cases["a"]) != 1 {
		t.Fatalf("Cases() = %+v", cases)
	}
	cmd := m.Commands()[0]
	cmd.Cases()[0].Desc = "mutated"
	if cmd.Cases()[0].Desc != "echo" {
		t.Error("Cases() should hand out copies")
	}
}

func TestVerify(t *testing.T) {
	cmd := echoModule("m", "echo").Commands()[0]
	for _, c := range cmd.Cases() {
		if err := Verify(cmd, c); err != nil {
			t.Errorf("Verify() = %v", err)
		}
	}
	tests := []struct {
		name    string
		c       Case
		wantErr string
	}{
		{"line mismatch", Case{Input: []string{"a"}, Output: []string{"a", "B"}}, `line 2 = "A", want "B"`},
		{"count mismatch", Case{Input: []string{"a"}, Output: []string{"a"}}, "got 2 line(s)"},
		{"parse failure", Case{Input: []string{}}, "missing required argument"},
		{"run failure", Case{Input: []string{"bad"}}, "bad input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(cmd, tt.c)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Verify() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
