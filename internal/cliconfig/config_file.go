package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and pointers for
// booleans to make TOML friendly (an absent key never overrides).
type FileConfig struct {
	JSON         *bool  `toml:"json"`
	Deep         *bool  `toml:"deep"`
	Follow       *bool  `toml:"follow"`
	Resume       *bool  `toml:"resume"`
	Quiet        *bool  `toml:"quiet"`
	PollInterval string `toml:"poll_interval"`
	StateDir     string `toml:"state_dir"`
	LogLevel     string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.dictload/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".dictload", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setBool("json", fc.JSON, &cfg.JSON)
	s.setBool("deep", fc.Deep, &cfg.Deep)
	s.setBool("follow", fc.Follow, &cfg.Follow)
	s.setBool("resume", fc.Resume, &cfg.Resume)
	s.setBool("quiet", fc.Quiet, &cfg.Quiet)

	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}

	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
