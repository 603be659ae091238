package timestamp

import (
	"testing"
	"time"

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

func TestTs(t *testing.T) {
	old := now
	now = func() time.Time { return time.Unix(1700000000, 123_000_000) }
	defer func() { now = old }()

	got, err := module.RunCase(command(t, "ts"), module.Case{})
	if err != nil || got[0] != "1700000000" {
		t.Errorf("ts = %v, %v", got, err)
	}
	got, err = module.RunCase(command(t, "ts"), module.Case{Input: []string{"-m"}})
	if err != nil || got[0] != "1700000000123" {
		t.Errorf("ts -m = %v, %v", got, err)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		cmd   string
		input []string
		code  e.ErrorCode
	}{
		{"ts2d", []string{"-z", "0", "yesterday"}, e.ErrInvalidNumber},
		{"ts2d", []string{"-z", "15", "0"}, e.ErrInvalidInput},
		{"ts2d", []string{"-z", "east", "0"}, e.ErrInvalidInput},
		{"ts2d", []string{"-z", "NaN", "0"}, e.ErrInvalidInput},
		{"d2ts", []string{"-z", "NaN", "1970-01-01 00:00:00"}, e.ErrInvalidInput},
		{"d2ts", []string{"-z", "+Inf", "1970-01-01 00:00:00"}, e.ErrInvalidInput},
		{"d2ts", []string{"-z", "0", "1970/01/01"}, e.ErrInvalidInput},
	}
	for _, tt := range tests {
		_, err := module.RunCase(command(t, tt.cmd), module.Case{Input: tt.input})
		if e.CodeOf(err) != tt.code {
			t.Errorf("%s %v: error = %v, want code %s", tt.cmd, tt.input, err, tt.code)
		}
	}
}

func TestLocalZoneRoundTrip(t *testing.T) {
	date, err := module.RunCase(command(t, "ts2d"), module.Case{Input: []string{"1234567890"}})
	if err != nil {
		t.Fatal(err)
	}
	back, err := module.RunCase(command(t, "d2ts"), module.Case{Input: date})
	if err != nil {
		t.Fatal(err)
	}
	if back[0] != "1234567890" {
		t.Errorf("round trip through %q gave %s", date[0], back[0])
	}
}
