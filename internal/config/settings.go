// Package config loads the engine's settings file, the league URL mapping
// and assembles the per-run configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the tunable part of the engine, loaded from a YAML file.
// Durations are written as whole numbers in the file (seconds or
// milliseconds as named) and converted on load.
type Settings struct {
	// FindTimeoutSeconds bounds every element wait.
	FindTimeoutSeconds int `yaml:"find_timeout_seconds"`
	// PollMillis is the interval between element presence checks.
	PollMillis int `yaml:"poll_millis"`
	// PageLoadTimeoutSeconds bounds a single navigation.
	PageLoadTimeoutSeconds int `yaml:"page_load_timeout_seconds"`

	// FormMatches is the history depth of a team form record.
	FormMatches int `yaml:"form_matches"`
	// HeadToHeadMatches is the history depth of a head-to-head record.
	HeadToHeadMatches int `yaml:"head_to_head_matches"`

	// MaxConsecutiveFaults aborts the run when this many targets in a row
	// fail at the session level.
	MaxConsecutiveFaults int `yaml:"max_consecutive_faults"`
}

// DefaultSettingsFile is looked for in the working directory when no
// settings file is given explicitly.
const DefaultSettingsFile = "settings.yaml"

// ResolveSettingsPath returns the explicit path when given, the default
// settings file when one exists in the working directory, and "" when
// neither applies.
func ResolveSettingsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultSettingsFile); err == nil {
		return DefaultSettingsFile
	}
	return ""
}

// DefaultSettings returns the values used when no settings file is given.
func DefaultSettings() Settings {
	return Settings{
		FindTimeoutSeconds:     10,
		PollMillis:             250,
		PageLoadTimeoutSeconds: 30,
		FormMatches:            5,
		HeadToHeadMatches:      5,
		MaxConsecutiveFaults:   3,
	}
}

// LoadSettings reads the YAML settings file at path. Missing fields keep
// their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.FindTimeoutSeconds <= 0 {
		return fmt.Errorf("find_timeout_seconds must be positive, got %d", s.FindTimeoutSeconds)
	}
	if s.PollMillis <= 0 {
		return fmt.Errorf("poll_millis must be positive, got %d", s.PollMillis)
	}
	if s.FormMatches <= 0 || s.HeadToHeadMatches <= 0 {
		return fmt.Errorf("history depths must be positive")
	}
	if s.MaxConsecutiveFaults <= 0 {
		return fmt.Errorf("max_consecutive_faults must be positive, got %d", s.MaxConsecutiveFaults)
	}
	return nil
}

// FindTimeout returns the element wait bound as a duration.
func (s Settings) FindTimeout() time.Duration {
	return time.Duration(s.FindTimeoutSeconds) * time.Second
}

// PollInterval returns the presence check interval as a duration.
func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollMillis) * time.Millisecond
}

// PageLoadTimeout returns the navigation bound as a duration.
func (s Settings) PageLoadTimeout() time.Duration {
	return time.Duration(s.PageLoadTimeoutSeconds) * time.Second
}
