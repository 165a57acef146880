package cli

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/guessr/internal/logger"
	"github.com/bastiangx/guessr/pkg/adapter"
	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/engine"
	"github.com/bastiangx/guessr/pkg/lexicon"
)

func TestInputHandlerDrivesSession(t *testing.T) {
	var out bytes.Buffer
	l := log.New(&out)

	lex := lexicon.New(nil)
	lex.MergeRemoteWordlist([]string{"cat", "cot", "cut", "dog", "car"})
	printer := NewPrinter(l)
	eng := engine.New(lex, engine.Options{
		Display:   printer,
		Submitter: printer,
		Logger:    logger.Discard(),
		Settings:  config.DefaultSettings(),
	})
	session := engine.NewSession(eng)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = session.Run(ctx) }()

	input := strings.Join([]string{
		"/user me (You)",
		"/draw alice",
		"/hints c__",
		"bob: cat",
		"/close cat",
		"/timer abc",
		"/threshold 2",
		"/sort alpha",
		"/state",
		"/stats",
		"/frobnicate",
		"just noise",
	}, "\n")

	h := NewInputHandler(session, adapter.NewClassifier(config.DefaultChatConfig()), strings.NewReader(input), l, 5)
	if err := h.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var candidates []string
	var settings config.Settings
	var user string
	if err := session.Inspect(ctx, func(e *engine.Engine) {
		candidates = e.Candidates()
		settings = e.Settings()
		user = e.Username()
	}); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(candidates, []string{"cot", "cut", "car"}) {
		t.Errorf("unexpected candidates %v", candidates)
	}
	want := config.Settings{AutoGuessTimer: config.DefaultAutoGuessTimer, AlphabeticalSort: true, ConfidenceThreshold: 2}
	if settings != want {
		t.Errorf("expected %+v, got %+v", want, settings)
	}
	if user != "me" {
		t.Errorf("expected username me, got %q", user)
	}

	cancel()
	<-session.Done()

	text := out.String()
	for _, s := range []string{"Remaining Guesses: 3", "rounds: 1", "Unknown command: /frobnicate", "Ignored"} {
		if !strings.Contains(text, s) {
			t.Errorf("output missing %q:\n%s", s, text)
		}
	}
}

func TestInputHandlerHintsBeforeBanner(t *testing.T) {
	lex := lexicon.New(nil)
	lex.MergeRemoteWordlist([]string{"cat", "horse", "dog", "bird"})
	eng := engine.New(lex, engine.Options{Logger: logger.Discard(), Settings: config.DefaultSettings()})
	session := engine.NewSession(eng)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = session.Run(ctx) }()

	input := "/hints ___\n/draw alice\n"
	h := NewInputHandler(session, adapter.NewClassifier(config.DefaultChatConfig()), strings.NewReader(input), logger.Discard(), 5)
	if err := h.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var candidates []string
	if err := session.Inspect(ctx, func(e *engine.Engine) {
		candidates = e.Candidates()
	}); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(candidates, []string{"cat", "dog"}) {
		t.Errorf("expected the round to start from the hint row, got %v", candidates)
	}
}
