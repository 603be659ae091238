package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMain_NoArgs(t *testing.T) {
	t.Setenv("BYTEKIT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	old := os.Args
	os.Args = []string{"bytekit"}
	defer func() { os.Args = old }()
	main()
}

func TestMain_Version(t *testing.T) {
	t.Setenv("BYTEKIT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	old := os.Args
	os.Args = []string{"bytekit", "version"}
	defer func() { os.Args = old }()
	main()
}

func TestMain_Command(t *testing.T) {
	t.Setenv("BYTEKIT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	old := os.Args
	os.Args = []string{"bytekit", "--no-color", "s2h", "abc"}
	defer func() { os.Args = old }()
	main()
}
