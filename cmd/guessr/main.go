// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs a guessr session as a msgpack IPC server or as an
interactive CLI [DBG].

Note: This is a BETA release. APIs and functionality may rapidly change.

guessr keeps a candidate list for the word being drawn in a skribbl-style
drawing game. The page-side script reports chat lines, the hint row and the
typed input; guessr narrows the candidates and answers with a ranked list
and, when allowed, the word to submit.

# Usage

Start the IPC server with default settings:

	guessr

Enable debug logs and use a custom config:

	guessr -d -config ./config.toml

Run the interactive CLI without fetching the remote wordlist:

	guessr -c -offline -seed words.txt

# Configuration

The TOML config is created with defaults on first run:

	[settings]
	auto_guess_timer = 3500
	alphabetical_sort = false
	sort_by_frequency = false
	confidence_threshold = 0

	[wordlist]
	url = "https://raw.githubusercontent.com/..."
	timeout_ms = 10000

	[chat]
	drawing_color = "rgb(57, 117, 206)"
	close_color = "rgb(226, 203, 0)"

Edits to the settings section are picked up while running. GUESSR_*
variables, optionally from a .env file, override the file.

# Persistence

Learned answers, word frequencies, stats and settings are written in the
background to msgpack files under the data dir (default: data/ inside the
config dir), and loaded on the next start.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/guessr/internal/cli"
	"github.com/bastiangx/guessr/internal/logger"
	"github.com/bastiangx/guessr/internal/utils"
	"github.com/bastiangx/guessr/pkg/adapter"
	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/engine"
	"github.com/bastiangx/guessr/pkg/lexicon"
	"github.com/bastiangx/guessr/pkg/server"
	"github.com/bastiangx/guessr/pkg/storage"
	"github.com/bastiangx/guessr/pkg/submit"
)

const (
	Version = "0.1.0-beta"
	AppName = "guessr"
	gh      = "https://github.com/bastiangx/guessr"
)

// shutdownTimeout bounds the final flush of pending writes.
const shutdownTimeout = 3 * time.Second

// sigHandler cancels the returned context on SIGINT or SIGTERM so pending
// writes can be flushed before exit.
func sigHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
	}()
	return ctx, cancel
}

// main wires config, storage, the engine session and the chosen front end.
// It holds no logic of its own.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configFile := flag.String("config", "", "Path to a custom config file")
	dataDir := flag.String("data", "", "Directory for persisted state (default: inside the config dir)")
	offline := flag.Bool("offline", false, "Skip fetching the remote wordlist")
	seedFile := flag.String("seed", "", "Local .txt wordlist merged at startup")
	limit := flag.Int("limit", 10, "Number of vocabulary matches the CLI prints")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	config.LoadDotEnv()
	if envDebug, ok := config.EnvBool(config.EnvDebug); ok && envDebug {
		*debugMode = true
	}
	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	ctx, stop := sigHandler()
	defer stop()

	pathResolver := utils.NewPathResolver()

	customPath := *configFile
	if customPath == "" {
		customPath = os.Getenv(config.EnvConfigPath)
	}
	appConfig, configPath, err := config.LoadConfigWithPriority(customPath, pathResolver)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appConfig.ApplyEnv()
	if *dataDir != "" {
		appConfig.Storage.Dir = *dataDir
	}
	if *offline {
		appConfig.Wordlist.Offline = true
	}
	if *seedFile != "" {
		appConfig.Wordlist.SeedFile = *seedFile
	}
	log.Debugf("Using config file: (%s)", configPath)

	var store storage.Store
	dataLabel := "memory only"
	fileStore, err := storage.NewFileStore(pathResolver.GetDataDir(appConfig.Storage.Dir))
	if err != nil {
		log.Warnf("Persisted state unavailable (%v), keeping everything in memory", err)
		store = storage.NewMemory()
	} else {
		store = fileStore
		dataLabel = fileStore.Dir()
		log.Debugf("Using data dir at: %s", dataLabel)
	}
	writer := storage.NewWriter(store, appConfig.Storage.MaxRetries)

	lex := lexicon.New(writer)
	if err := lex.Load(ctx, store); err != nil {
		log.Warnf("Could not load learned words: %v", err)
	}
	seedWordlist(ctx, lex, appConfig.Wordlist)

	classifier := adapter.NewClassifier(appConfig.Chat)

	// front end: the display and the final submission sink
	var (
		display engine.Display
		sink    submit.Sink
		outbox  *server.Outbox
		printer *cli.Printer
	)
	if *cliMode {
		log.SetReportTimestamp(false)
		printer = cli.NewPrinter(log.Default())
		display = printer
		sink = submit.SinkFunc(func(_ context.Context, w string) error {
			printer.Submit(w)
			return nil
		})
	} else {
		outbox = server.NewOutbox(os.Stdout)
		display = outbox
		sink = outbox
	}

	throttle := submit.NewThrottled(sink, appConfig.Submit.PerSecond, appConfig.Submit.Burst, appConfig.Submit.Queue)
	eng := engine.New(lex, engine.Options{
		Saver:     writer,
		Submitter: throttle,
		Display:   display,
		Logger:    logger.New("engine"),
		Settings:  appConfig.Settings,
	})
	if err := eng.Load(ctx, store); err != nil {
		log.Warnf("Could not load stats/settings: %v", err)
	}

	session := engine.NewSession(eng)
	go func() { _ = session.Run(ctx) }()
	go func() { _ = throttle.Run(ctx) }()

	if configPath != "" {
		watchConfig(ctx, session, configPath)
	}

	// stdin reads cannot be interrupted, so the front end runs on its own
	// goroutine and a signal wins the race
	done := make(chan error, 1)
	if *cliMode {
		inputHandler := cli.NewInputHandler(session, classifier, os.Stdin, log.Default(), *limit)
		go func() { done <- inputHandler.Start(ctx) }()
	} else {
		srv := server.NewServer(session, classifier, outbox, os.Stdin, server.Options{
			Config:     appConfig,
			ConfigPath: configPath,
		})
		showStartupInfo(dataLabel, lex.Len())
		go func() { done <- srv.Start(ctx) }()
	}

	select {
	case err := <-done:
		if err != nil {
			log.Errorf("Stopped: %v", err)
		}
	case <-ctx.Done():
	}

	if ctx.Err() == nil {
		// let queued events land before the session stops
		_ = session.Inspect(ctx, func(*engine.Engine) {})
	}
	stop()
	<-session.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := writer.Close(shutdownCtx); err != nil {
		log.Warnf("Closing storage: %v", err)
	}
}

// seedWordlist merges the local seed file and, unless offline, the remote
// list. Failures only cost vocabulary.
func seedWordlist(ctx context.Context, lex *lexicon.Lexicon, wl config.WordlistConfig) {
	if wl.SeedFile != "" {
		words, err := lexicon.LoadWordlistFile(wl.SeedFile)
		if err != nil {
			log.Warnf("Seed wordlist skipped: %v", err)
		} else {
			log.Debugf("Seed file added %d words", lex.MergeRemoteWordlist(words))
		}
	}
	if wl.Offline || wl.URL == "" {
		return
	}

	client := &http.Client{Timeout: wl.Timeout()}
	added := lex.MergeRemoteWordlist(lexicon.FetchWordlist(ctx, client, wl.URL))
	log.Debugf("Remote wordlist added %d words (%d known)", added, lex.Len())
}

// watchConfig forwards settings edits in the config file to the session.
func watchConfig(ctx context.Context, session *engine.Session, configPath string) {
	w, err := config.NewWatcher(configPath, config.DefaultDebounce, func(c *config.Config) {
		if err := session.Post(ctx, engine.SettingsSaved{Settings: c.Settings}); err != nil {
			log.Debugf("Dropping config reload: %v", err)
		}
	})
	if err != nil {
		log.Warnf("Config hot reload disabled: %v", err)
		return
	}
	go func() { _ = w.Run(ctx) }()
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ guessr ] Narrows down the word being drawn")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dataDir string, words int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println("  guessr   ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("words known: %s", utils.FormatWithCommas(words))
	log.Infof("data dir: ( %s )", dataDir)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
