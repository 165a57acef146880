package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(c *Config) { changes <- c })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	if err := cfg.UpdateSettings(path, Settings{AutoGuessTimer: 4200, ConfidenceThreshold: 2}); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		if got.Settings.AutoGuessTimer != 4200 || got.Settings.ConfidenceThreshold != 2 {
			t.Errorf("reloaded wrong settings: %+v", got.Settings)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the config")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if _, err := InitConfig(path); err != nil {
		t.Fatal(err)
	}

	changes := make(chan *Config, 1)
	w, err := NewWatcher(path, 10*time.Millisecond, func(c *Config) { changes <- c })
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	if err := SaveConfig(DefaultConfig(), filepath.Join(dir, "other.toml")); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
		t.Error("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}
