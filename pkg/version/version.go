// Package version carries build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time: -ldflags "-X bytekit/pkg/version.Version=0.6.0"
var (
	Version = "0.6.0"
	Commit  = "development"
	Date    = "unknown"
)

// canonical returns v in the "vMAJOR.MINOR.PATCH" form expected by semver,
// or "" when v is not a valid version.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// NotAfter reports whether since is a valid version no newer than current.
func NotAfter(since, current string) bool {
	s, c := canonical(since), canonical(current)
	if s == "" || c == "" {
		return false
	}
	return semver.Compare(s, c) <= 0
}

// String renders the long version banner
func String() string {
	return fmt.Sprintf("bytekit %s (commit %s, built %s, %s %s/%s)",
		Version, Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
