package cliconfig

import "os"

// Environment variable names recognized by dictload.
const (
	EnvJSON         = "DICTLOAD_JSON"
	EnvDeep         = "DICTLOAD_DEEP"
	EnvFollow       = "DICTLOAD_FOLLOW"
	EnvResume       = "DICTLOAD_RESUME"
	EnvQuiet        = "DICTLOAD_QUIET"
	EnvPollInterval = "DICTLOAD_POLL"
	EnvStateDir     = "DICTLOAD_STATE_DIR"
	EnvLogLevel     = "DICTLOAD_LOG_LEVEL"
)

// ApplyEnvConfig applies DICTLOAD_* environment variables to the Config.
// Variables override file config but are overridden by flags (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setBoolFromString("json", os.Getenv(EnvJSON), &cfg.JSON)
	s.setBoolFromString("deep", os.Getenv(EnvDeep), &cfg.Deep)
	s.setBoolFromString("follow", os.Getenv(EnvFollow), &cfg.Follow)
	s.setBoolFromString("resume", os.Getenv(EnvResume), &cfg.Resume)
	s.setBoolFromString("quiet", os.Getenv(EnvQuiet), &cfg.Quiet)

	if err := s.setDuration("poll", os.Getenv(EnvPollInterval), &cfg.PollInterval); err != nil {
		return err
	}

	s.setString("state-dir", os.Getenv(EnvStateDir), &cfg.StateDir)
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)

	return nil
}
