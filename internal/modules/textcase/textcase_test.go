package textcase

import (
	"slices"
	"testing"

	"bytekit/internal/module"
)

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"helloWorld", []string{"hello", "World"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"parseURL", []string{"parse", "URL"}},
		{"version2Beta", []string{"version2", "Beta"}},
		{"--snake_case-and kebab--", []string{"snake", "case", "and", "kebab"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := words(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("words(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStyles(t *testing.T) {
	cmd := Module().Commands()[0]
	tests := []struct {
		typ, in, want string
	}{
		{"upper", "straße", "STRASSE"},
		{"lower", "ÀB", "àb"},
		{"camel", "XMLHttpRequest", "xmlHttpRequest"},
		{"pascal", "user-id", "UserId"},
		{"snake", "UserID", "user_id"},
		{"constant", "maxRetryCount", "MAX_RETRY_COUNT"},
		{"kebab", "Hello World", "hello-world"},
	}
	for _, tt := range tests {
		got, err := module.RunCase(cmd, module.Case{Input: []string{"-t", tt.typ, tt.in}})
		if err != nil {
			t.Fatalf("case -t %s: %v", tt.typ, err)
		}
		if got[0] != tt.want {
			t.Errorf("case -t %s %q = %q, want %q", tt.typ, tt.in, got[0], tt.want)
		}
	}
}
