package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Environment variables that override the file config.
const (
	EnvConfigPath  = "GUESSR_CONFIG"
	EnvDataDir     = "GUESSR_DATA_DIR"
	EnvWordlistURL = "GUESSR_WORDLIST_URL"
	EnvOffline     = "GUESSR_OFFLINE"
	EnvDebug       = "GUESSR_DEBUG"
)

// LoadDotEnv reads .env files into the process environment. Missing files
// are fine; variables already set in the environment are not overwritten.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Debugf("No .env loaded: %v", err)
	}
}

// ApplyEnv overlays GUESSR_* variables onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv(EnvWordlistURL); v != "" {
		c.Wordlist.URL = v
	}
	if v, ok := envBool(EnvOffline); ok {
		c.Wordlist.Offline = v
	}
}

// EnvBool reads a boolean variable; unset or unparsable reports ok=false.
func EnvBool(key string) (bool, bool) {
	return envBool(key)
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warnf("Invalid bool for %s: %q, ignoring", key, raw)
		return false, false
	}
	return v, true
}
