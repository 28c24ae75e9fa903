// Package cliconfig holds the dictload CLI configuration: defaults,
// TOML config file, DICTLOAD_* environment variables and flag precedence.
// Flags win over environment variables, which win over the config file,
// which wins over defaults.
package cliconfig

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config holds CLI configuration for dictload.
type Config struct {
	// JSON renders snapshots as JSON objects instead of the default
	// rendering.
	JSON bool

	// Deep merges fragments with deep update semantics instead of the
	// default shallow last-write-wins union.
	Deep bool

	// Follow keeps consuming the file as it grows instead of exiting at
	// the end of the stream.
	Follow bool

	// Resume restores the follow offset from the state file.
	Resume bool

	// Quiet silences diagnostics on stderr; snapshot output on stdout is
	// unaffected.
	Quiet bool

	// PollInterval is the follow-mode rescan interval when no file events
	// arrive.
	PollInterval time.Duration

	// StateDir is where follow mode keeps its state file. Defaults to the
	// stream file's directory.
	StateDir string

	// LogLevel is the zerolog level for diagnostics.
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		PollInterval: 500 * time.Millisecond,
		LogLevel:     "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Resume && !c.Follow {
		return fmt.Errorf("resume requires follow")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
