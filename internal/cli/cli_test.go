package cli

import (
	"bytes"
	stdErrors "errors"
	"slices"
	"strings"
	"testing"

	"bytekit/internal/config"
	"bytekit/internal/module"
	"bytekit/internal/modules"
	"bytekit/pkg/version"
)

type result struct {
	stdout, stderr string
	err            error
}

func run(t *testing.T, cfg *config.Config, stdin string, args ...string) result {
	t.Helper()
	c := New(modules.NewRegistry(), cfg)
	var out, errOut bytes.Buffer
	c.SetIO(strings.NewReader(stdin), &out, &errOut, stdin == "")
	err := c.Run(append([]string{Name}, args...))
	return result{out.String(), errOut.String(), err}
}

func TestRunDispatches(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"h2s", "68656c6c6f"}, "hello\n"},
		{[]string{"s2h", "hello"}, "0x68656c6c6f\n"},
		{[]string{"hash", "-a", "md5", "0x"}, "0xd41d8cd98f00b204e9800998ecf8427e\n"},
		{[]string{"ns", "-x", "--", "-1"}, "-0x1\n"},
		{[]string{"case", "--type=snake", "helloWorld"}, "hello_world\n"},
	}
	for _, tt := range tests {
		r := run(t, nil, "", tt.args...)
		if r.err != nil {
			t.Errorf("%v: %v (stderr %q)", tt.args, r.err, r.stderr)
			continue
		}
		if r.stdout != tt.want {
			t.Errorf("%v: stdout = %q, want %q", tt.args, r.stdout, tt.want)
		}
	}
}

func TestStdin(t *testing.T) {
	r := run(t, nil, "0x6869\n", "h2s")
	if r.err != nil || r.stdout != "hi\n" {
		t.Errorf("h2s from stdin = %q, %v", r.stdout, r.err)
	}

	// a given argument wins over stdin
	r = run(t, nil, "0x6869\n", "h2s", "0x6f6b")
	if r.err != nil || r.stdout != "ok\n" {
		t.Errorf("h2s with argument = %q, %v", r.stdout, r.err)
	}

	// an interactive stdin is never read
	r = run(t, nil, "", "h2s")
	if r.err == nil || !strings.Contains(r.err.Error(), "missing required argument INPUT") {
		t.Errorf("h2s without input = %v", r.err)
	}
}

func TestDomainError(t *testing.T) {
	r := run(t, nil, "", "h2s", "zz")
	if !stdErrors.Is(r.err, module.ErrCommandFailed) {
		t.Fatalf("error = %v, want ErrCommandFailed", r.err)
	}
	if r.stdout != "" || !strings.Contains(r.stderr, "invalid hex") {
		t.Errorf("stdout = %q, stderr = %q", r.stdout, r.stderr)
	}
}

func TestParseErrors(t *testing.T) {
	for _, args := range [][]string{
		{"nope"},
		{"h2s", "--nope", "00"},
		{"hash", "-a", "crc32", "0x"},
		{"h2s", "00", "11"},
	} {
		r := run(t, nil, "", args...)
		if r.err == nil {
			t.Errorf("%v: expected a parse error", args)
			continue
		}
		if stdErrors.Is(r.err, module.ErrCommandFailed) {
			t.Errorf("%v: parse errors must not reach dispatch: %v", args, r.err)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &config.Config{Defaults: map[string]map[string]any{
		"nosuch": {"x": "y"},
		"hash":   {"algo": "md5"},
		"ns":     {"hexadecimal": true, "bogus": "x"},
	}}
	r := run(t, cfg, "", "hash", "0x")
	if r.stdout != "0xd41d8cd98f00b204e9800998ecf8427e\n" {
		t.Errorf("configured default not applied: %q %v", r.stdout, r.err)
	}
	r = run(t, cfg, "", "hash", "-a", "sha1", "0x")
	if r.stdout != "0xda39a3ee5e6b4b0d3255bfef95601890afd80709\n" {
		t.Errorf("command line should win over config: %q %v", r.stdout, r.err)
	}
	r = run(t, cfg, "", "ns", "255")
	if r.err != nil || r.stdout != "0xff\n" {
		t.Errorf("bool default not applied: %q %v", r.stdout, r.err)
	}

	// a value outside the flag's enumeration falls back to the built-in default
	bad := &config.Config{Defaults: map[string]map[string]any{"hash": {"algo": "md4"}}}
	r = run(t, bad, "", "hash", "0x")
	if r.err != nil || r.stdout != "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855\n" {
		t.Errorf("invalid default should be ignored: %q %v", r.stdout, r.err)
	}
}

func TestVersion(t *testing.T) {
	for _, args := range [][]string{{"version"}, {"--version"}} {
		r := run(t, nil, "", args...)
		if r.err != nil || !strings.Contains(r.stdout, version.Version) {
			t.Errorf("%v = %q, %v", args, r.stdout, r.err)
		}
	}
}

func TestHelp(t *testing.T) {
	for _, args := range [][]string{nil, {"--help"}, {"help"}} {
		r := run(t, nil, "", args...)
		if r.err != nil {
			t.Fatalf("%v: %v", args, r.err)
		}
		for _, want := range []string{"Usage:", "h2s", "ec_verify", "usage", "completion", "--no-color"} {
			if !strings.Contains(r.stdout, want) {
				t.Errorf("%v: help is missing %q", args, want)
			}
		}
	}
}

func TestCommandTreeMatchesRegistry(t *testing.T) {
	reg := modules.NewRegistry()
	root := New(reg, nil).Root()
	var names, want []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, s := range reg.Schemas() {
		want = append(want, s.Name)
	}
	if !slices.Equal(names, want) {
		t.Errorf("cobra commands = %v\nregistry schemas = %v", names, want)
	}
}

func TestBuiltinsThroughCLI(t *testing.T) {
	r := run(t, nil, "", "usage", "-s", "h2s", "-f", "json")
	if r.err != nil || !strings.Contains(r.stdout, `"name": "h2s"`) {
		t.Errorf("usage = %q, %v", r.stdout, r.err)
	}
	r = run(t, nil, "", "completion", "bash")
	if r.err != nil || !strings.Contains(r.stdout, `commands+=("ec_sign")`) {
		t.Errorf("completion bash failed: %v", r.err)
	}
}

func TestParseGlobals(t *testing.T) {
	t.Setenv("BYTEKIT_VERBOSE", "")
	t.Setenv("BYTEKIT_DEBUG", "1")
	t.Setenv("BYTEKIT_CONFIG", "/env/bytekit.toml")

	g, rest := ParseGlobals([]string{"bytekit", "--no-color", "h2s", "--config", "/tmp/c.toml", "--", "--verbose"})
	if !g.NoColor || g.Verbose || !g.Debug || g.ConfigPath != "/tmp/c.toml" {
		t.Errorf("globals = %+v", g)
	}
	if want := []string{"bytekit", "h2s", "--", "--verbose"}; !slices.Equal(rest, want) {
		t.Errorf("rest = %q, want %q", rest, want)
	}

	g, rest = ParseGlobals([]string{"bytekit", "--verbose", "--config=x.toml", "ts"})
	if !g.Verbose || g.ConfigPath != "x.toml" || !slices.Equal(rest, []string{"bytekit", "ts"}) {
		t.Errorf("globals = %+v, rest = %q", g, rest)
	}

	g, _ = ParseGlobals([]string{"bytekit"})
	if g.ConfigPath != "/env/bytekit.toml" {
		t.Errorf("config path = %s, want the environment override", g.ConfigPath)
	}
}
