package terminal

import (
	"os"
	"testing"
)

func TestColorize_NoColorEnv(t *testing.T) {
	old := os.Getenv("NO_COLOR")
	os.Setenv("NO_COLOR", "1")
	defer os.Setenv("NO_COLOR", old)

	txt := "hello"
	if got := Colorize(Red, txt); got != txt {
		t.Errorf("expected no colorization when NO_COLOR=1; got %q", got)
	}
	if got := BoldText(txt); got != txt {
		t.Errorf("expected no bold when NO_COLOR=1; got %q", got)
	}
}

func TestSetMode(t *testing.T) {
	defer SetMode(ModeAuto)

	SetMode(ModeAlways)
	if got := Colorize(Red, "x"); got != Red+"x"+Reset {
		t.Errorf("ModeAlways: got %q", got)
	}
	SetMode(ModeNever)
	if got := Colorize(Red, "x"); got != "x" {
		t.Errorf("ModeNever: got %q", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"", ModeAuto, true},
		{"auto", ModeAuto, true},
		{"always", ModeAlways, true},
		{"never", ModeNever, true},
		{"sometimes", ModeAuto, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
