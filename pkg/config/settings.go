package config

import (
	"strconv"
	"strings"
	"time"
)

// Bounds for user supplied settings.
const (
	MinAutoGuessTimer     = 1000
	DefaultAutoGuessTimer = 3500
)

// Settings are the user-facing options saved from the configuration surface.
// They are persisted under the "settings" key and seeded from the TOML file.
type Settings struct {
	AutoGuessTimer      int  `toml:"auto_guess_timer" msgpack:"autoGuessTimer"`
	AlphabeticalSort    bool `toml:"alphabetical_sort" msgpack:"alphabeticalSort"`
	SortByFrequency     bool `toml:"sort_by_frequency" msgpack:"sortByFrequency"`
	ConfidenceThreshold int  `toml:"confidence_threshold" msgpack:"confidenceThreshold"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		AutoGuessTimer:      DefaultAutoGuessTimer,
		AlphabeticalSort:    false,
		SortByFrequency:     false,
		ConfidenceThreshold: 0,
	}
}

// AutoGuessInterval is AutoGuessTimer as a duration.
func (s Settings) AutoGuessInterval() time.Duration {
	return time.Duration(s.AutoGuessTimer) * time.Millisecond
}

// Sanitize returns s with every out-of-range field replaced by the value
// from prev. The two sort modes are mutually exclusive; frequency wins.
func (s Settings) Sanitize(prev Settings) Settings {
	if s.AutoGuessTimer < MinAutoGuessTimer {
		s.AutoGuessTimer = prev.AutoGuessTimer
	}
	if s.AutoGuessTimer < MinAutoGuessTimer {
		s.AutoGuessTimer = DefaultAutoGuessTimer
	}
	if s.ConfidenceThreshold < 0 {
		s.ConfidenceThreshold = prev.ConfidenceThreshold
	}
	if s.ConfidenceThreshold < 0 {
		s.ConfidenceThreshold = 0
	}
	if s.SortByFrequency && s.AlphabeticalSort {
		s.AlphabeticalSort = false
	}
	return s
}

// SettingsInput is the raw form of a save action: numbers arrive as text.
type SettingsInput struct {
	Timer            string
	Threshold        string
	AlphabeticalSort bool
	SortByFrequency  bool
}

// Apply parses the raw input on top of prev. Non-numeric timer or
// threshold values keep the previous value instead of rejecting the save.
func (in SettingsInput) Apply(prev Settings) Settings {
	next := prev
	if v, err := strconv.Atoi(strings.TrimSpace(in.Timer)); err == nil {
		next.AutoGuessTimer = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(in.Threshold)); err == nil {
		next.ConfidenceThreshold = v
	}
	next.AlphabeticalSort = in.AlphabeticalSort
	next.SortByFrequency = in.SortByFrequency
	return next.Sanitize(prev)
}
