/*
Package config manages the TOML config for guessr.

The file seeds the user settings, the remote wordlist source, the chat
classification constants used by the page adapter, and where persisted
state lives. Anything missing or malformed falls back to built-in defaults.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/guessr/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the config file name inside the config dir.
const FileName = "config.toml"

// DefaultWordlistURL is the seed wordlist the extension has always pulled.
const DefaultWordlistURL = "https://raw.githubusercontent.com/Umbra-Domini/SkribblPro/refs/heads/main/skribblWordlist.txt"

// Config holds the entire config structure
type Config struct {
	Settings Settings       `toml:"settings"`
	Wordlist WordlistConfig `toml:"wordlist"`
	Chat     ChatConfig     `toml:"chat"`
	Storage  StorageConfig  `toml:"storage"`
	Submit   SubmitConfig   `toml:"submit"`
}

// WordlistConfig describes where seed words come from.
type WordlistConfig struct {
	URL       string `toml:"url"`
	TimeoutMs int    `toml:"timeout_ms"`
	SeedFile  string `toml:"seed_file"`
	Offline   bool   `toml:"offline"`
}

// Timeout returns the fetch timeout as a duration.
func (w WordlistConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutMs) * time.Millisecond
}

// ChatConfig holds the presentation-layer conventions the chat classifier
// relies on. They mirror the game's current UI and are not stable, so they
// live in config rather than code.
type ChatConfig struct {
	DrawingColor  string `toml:"drawing_color"`
	DrawingSuffix string `toml:"drawing_suffix"`
	CloseColor    string `toml:"close_color"`
	CloseSuffix   string `toml:"close_suffix"`
	Separator     string `toml:"separator"`
	SelfMarker    string `toml:"self_marker"`
}

// StorageConfig controls persisted state.
type StorageConfig struct {
	Dir        string `toml:"dir"`
	MaxRetries int    `toml:"max_retries"`
}

// SubmitConfig throttles outgoing guesses so the game's spam filter stays quiet.
type SubmitConfig struct {
	PerSecond float64 `toml:"per_second"`
	Burst     int     `toml:"burst"`
	Queue     int     `toml:"queue"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Settings: DefaultSettings(),
		Wordlist: WordlistConfig{
			URL:       DefaultWordlistURL,
			TimeoutMs: 10000,
		},
		Chat: DefaultChatConfig(),
		Storage: StorageConfig{
			MaxRetries: 3,
		},
		Submit: SubmitConfig{
			PerSecond: 2,
			Burst:     1,
			Queue:     16,
		},
	}
}

// DefaultChatConfig returns the classifier constants matching the live game.
func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		DrawingColor:  "rgb(57, 117, 206)",
		DrawingSuffix: " is drawing now!",
		CloseColor:    "rgb(226, 203, 0)",
		CloseSuffix:   " is close!",
		Separator:     ": ",
		SelfMarker:    " (You)",
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/guessr/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, resolver *utils.PathResolver) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	if resolver == nil {
		return DefaultConfig(), "", nil
	}

	defaultPath := resolver.GetConfigPath(FileName)
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. A file that fails strict decoding is
// salvaged section by section; the result is always sanitized.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse keeps every field that decodes with the right type
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "settings"); ok {
		extractSettings(section, &config.Settings)
	}
	if section, ok := utils.ExtractSection(tempConfig, "wordlist"); ok {
		extractWordlistConfig(section, &config.Wordlist)
	}
	if section, ok := utils.ExtractSection(tempConfig, "chat"); ok {
		extractChatConfig(section, &config.Chat)
	}
	if section, ok := utils.ExtractSection(tempConfig, "storage"); ok {
		extractStorageConfig(section, &config.Storage)
	}
	if section, ok := utils.ExtractSection(tempConfig, "submit"); ok {
		extractSubmitConfig(section, &config.Submit)
	}
	return config
}

func extractSettings(data map[string]any, s *Settings) {
	if val, ok := utils.ExtractInt(data, "auto_guess_timer"); ok {
		s.AutoGuessTimer = val
	}
	if val, ok := utils.ExtractBool(data, "alphabetical_sort"); ok {
		s.AlphabeticalSort = val
	}
	if val, ok := utils.ExtractBool(data, "sort_by_frequency"); ok {
		s.SortByFrequency = val
	}
	if val, ok := utils.ExtractInt(data, "confidence_threshold"); ok {
		s.ConfidenceThreshold = val
	}
}

func extractWordlistConfig(data map[string]any, w *WordlistConfig) {
	if val, ok := utils.ExtractString(data, "url"); ok {
		w.URL = val
	}
	if val, ok := utils.ExtractInt(data, "timeout_ms"); ok {
		w.TimeoutMs = val
	}
	if val, ok := utils.ExtractString(data, "seed_file"); ok {
		w.SeedFile = val
	}
	if val, ok := utils.ExtractBool(data, "offline"); ok {
		w.Offline = val
	}
}

func extractChatConfig(data map[string]any, c *ChatConfig) {
	fields := map[string]*string{
		"drawing_color":  &c.DrawingColor,
		"drawing_suffix": &c.DrawingSuffix,
		"close_color":    &c.CloseColor,
		"close_suffix":   &c.CloseSuffix,
		"separator":      &c.Separator,
		"self_marker":    &c.SelfMarker,
	}
	for key, dst := range fields {
		if val, ok := utils.ExtractString(data, key); ok {
			*dst = val
		}
	}
}

func extractStorageConfig(data map[string]any, s *StorageConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		s.Dir = val
	}
	if val, ok := utils.ExtractInt(data, "max_retries"); ok {
		s.MaxRetries = val
	}
}

func extractSubmitConfig(data map[string]any, s *SubmitConfig) {
	if val, ok := data["per_second"]; ok {
		switch v := val.(type) {
		case float64:
			s.PerSecond = v
		case int64:
			s.PerSecond = float64(v)
		}
	}
	if val, ok := utils.ExtractInt(data, "burst"); ok {
		s.Burst = val
	}
	if val, ok := utils.ExtractInt(data, "queue"); ok {
		s.Queue = val
	}
}

// sanitize pulls every field back into range
func (c *Config) sanitize() {
	def := DefaultConfig()
	c.Settings = c.Settings.Sanitize(def.Settings)
	if c.Wordlist.TimeoutMs <= 0 {
		c.Wordlist.TimeoutMs = def.Wordlist.TimeoutMs
	}
	if c.Chat.Separator == "" {
		c.Chat.Separator = def.Chat.Separator
	}
	if c.Storage.MaxRetries < 0 {
		c.Storage.MaxRetries = def.Storage.MaxRetries
	}
	if c.Submit.PerSecond <= 0 {
		c.Submit.PerSecond = def.Submit.PerSecond
	}
	if c.Submit.Burst < 1 {
		c.Submit.Burst = def.Submit.Burst
	}
	if c.Submit.Queue < 1 {
		c.Submit.Queue = def.Submit.Queue
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// UpdateSettings replaces the settings section and writes the file back.
func (c *Config) UpdateSettings(configPath string, s Settings) error {
	c.Settings = s.Sanitize(c.Settings)
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
