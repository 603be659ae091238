package url

import (
	"testing"

	"bytekit/internal/module"
	e "bytekit/pkg/errors"
)

func command(t *testing.T, name string) module.Command {
	t.Helper()
	for _, c := range Module().Commands() {
		if c.Schema().Name == name {
			return c
		}
	}
	t.Fatalf("command %s not found", name)
	return nil
}

func TestUdInvalid(t *testing.T) {
	for _, in := range []string{"%zz", "abc%", "%4"} {
		_, err := module.RunCase(command(t, "ud"), module.Case{Input: []string{in}})
		if e.CodeOf(err) != e.ErrInvalidEncoding {
			t.Errorf("ud %q: error = %v, want %s", in, err, e.ErrInvalidEncoding)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{"", "plain", "a b+c", "~user/path?q=1&r=2#frag", "日本語 ✓"} {
		enc, err := module.RunCase(command(t, "ue"), module.Case{Input: []string{in}})
		if err != nil {
			t.Fatal(err)
		}
		dec, err := module.RunCase(command(t, "ud"), module.Case{Input: enc})
		if err != nil {
			t.Fatal(err)
		}
		if dec[0] != in {
			t.Errorf("round trip %q = %q via %q", in, dec[0], enc[0])
		}
	}
}
