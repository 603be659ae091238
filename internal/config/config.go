// Package config loads user preferences for bytekit.
//
// Configuration is stored in TOML at ~/.bytekit.toml, or wherever
// BYTEKIT_CONFIG or --config points, and includes:
//   - the color mode (auto, always, never)
//   - per-command flag defaults under [defaults.<command>]
//
// A missing file is an empty configuration so the tool works without one.
// Defaults only apply to command lines typed by a user; examples and tests
// always run against the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	e "bytekit/pkg/errors"
	"bytekit/pkg/logger"
	"bytekit/pkg/terminal"
)

// EnvPath overrides the configuration file location
const EnvPath = "BYTEKIT_CONFIG"

var log = logger.New("config")

// Config holds user preferences
type Config struct {
	Color string `toml:"color"`
	// Defaults maps command name to flag name to value
	Defaults map[string]map[string]any `toml:"defaults"`
}

// Path returns the configuration file location: $BYTEKIT_CONFIG, else
// ~/.bytekit.toml.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	home := os.Getenv("HOME")
	if home == "" {
		if wd, _ := os.Getwd(); wd != "" {
			return filepath.Join(wd, ".bytekit.toml")
		}
	}
	return filepath.Join(home, ".bytekit.toml")
}

// Load reads the configuration at path. A missing file yields an empty
// config and nil error; a malformed one an INVALID_CONFIG error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	path = os.ExpandEnv(path)
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("no config at %s", path)
			return &Config{}, nil
		}
		return nil, e.New(e.ErrInvalidConfig, "failed to parse config").
			WithCause(err).
			WithContext("path", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Warnf("ignoring unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if _, ok := terminal.ParseMode(cfg.Color); !ok {
		return nil, e.Newf(e.ErrInvalidConfig, "invalid color %q", cfg.Color).
			WithContext("path", path).
			WithSuggestion(`Use "auto", "always" or "never"`)
	}
	log.Verbosef("loaded config from %s (%d command default(s))", path, len(cfg.Defaults))
	return cfg, nil
}

// ColorMode returns the configured color mode
func (c *Config) ColorMode() terminal.Mode {
	m, _ := terminal.ParseMode(c.Color)
	return m
}

// Default returns the configured default of a command flag
func (c *Config) Default(command, flag string) (string, bool) {
	v, ok := c.Defaults[command][flag]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Flags returns the flag names configured for a command, sorted
func (c *Config) Flags(command string) []string {
	out := make([]string, 0, len(c.Defaults[command]))
	for name := range c.Defaults[command] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Commands returns the command names with configured defaults, sorted
func (c *Config) Commands() []string {
	out := make([]string, 0, len(c.Defaults))
	for name := range c.Defaults {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
