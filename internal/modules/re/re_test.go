package re

import (
	"testing"

	"bytekit/internal/module"
	e "bytekit/pkg/errors"
)

func TestErrors(t *testing.T) {
	cmd := Module().Commands()[0]
	tests := []struct {
		input []string
		code  e.ErrorCode
	}{
		{[]string{"abc"}, e.ErrInvalidInput},
		{[]string{"-p", "a(b", "abc"}, e.ErrInvalidInput},
		{[]string{"-p", `(?<=a)b`, "abc"}, e.ErrInvalidInput},
	}
	for _, tt := range tests {
		_, err := module.RunCase(cmd, module.Case{Input: tt.input})
		if e.CodeOf(err) != tt.code {
			t.Errorf("re %v: error = %v, want %s", tt.input, err, tt.code)
		}
	}
}

func TestOptionalGroup(t *testing.T) {
	got, err := module.RunCase(Module().Commands()[0], module.Case{Input: []string{"-p", "a(x)?", "a"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "    group#1: " {
		t.Errorf("re = %q", got)
	}
}
