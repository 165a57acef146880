package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bastiangx/guessr/internal/logger"
	"github.com/bastiangx/guessr/pkg/config"
	"github.com/bastiangx/guessr/pkg/lexicon"
)

type fakeTicker struct {
	every   time.Duration
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (tf *tickerFactory) new(d time.Duration) Ticker {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	t := &fakeTicker{every: d, c: make(chan time.Time)}
	tf.tickers = append(tf.tickers, t)
	return t
}

func (tf *tickerFactory) all() []*fakeTicker {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return append([]*fakeTicker(nil), tf.tickers...)
}

func startSession(t *testing.T, words []string) (*Session, *tickerFactory, *recordSubmitter, context.CancelFunc) {
	t.Helper()
	lex := lexicon.New(nil)
	lex.MergeRemoteWordlist(words)
	sub := &recordSubmitter{}
	eng := New(lex, Options{Submitter: sub, Logger: logger.Discard(), Settings: config.DefaultSettings()})

	tf := &tickerFactory{}
	s := NewSession(eng, WithTicker(tf.new), WithQueueSize(8))
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-s.Done()
	})
	return s, tf, sub, cancel
}

func post(t *testing.T, s *Session, ev Event) {
	t.Helper()
	if err := s.Post(context.Background(), ev); err != nil {
		t.Fatalf("Post(%T): %v", ev, err)
	}
}

// waits until every event posted so far has been handled
func drain(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Inspect(context.Background(), func(*Engine) {}); err != nil {
		t.Fatalf("Inspect: %v", err)
	}
}

func TestSessionReschedulesTimer(t *testing.T) {
	s, tf, _, _ := startSession(t, nil)

	drain(t, s)
	if n := len(tf.all()); n != 0 {
		t.Fatalf("no ticker expected while auto-guess is off, got %d", n)
	}

	post(t, s, AutoGuessToggled{On: true})
	drain(t, s)
	tickers := tf.all()
	if len(tickers) != 1 || tickers[0].every != config.DefaultAutoGuessTimer*time.Millisecond {
		t.Fatalf("expected one ticker at the default interval, got %d", len(tickers))
	}

	post(t, s, SettingsSaved{Settings: config.Settings{AutoGuessTimer: 1500}})
	drain(t, s)
	tickers = tf.all()
	if len(tickers) != 2 {
		t.Fatalf("expected a replacement ticker, got %d", len(tickers))
	}
	if !tickers[0].isStopped() {
		t.Error("old ticker must be stopped before rescheduling")
	}
	if tickers[1].every != 1500*time.Millisecond || tickers[1].isStopped() {
		t.Errorf("new ticker wrong: every=%v stopped=%v", tickers[1].every, tickers[1].isStopped())
	}

	post(t, s, AutoGuessToggled{On: false})
	drain(t, s)
	if !tickers[1].isStopped() {
		t.Error("toggling off must stop the ticker")
	}
	if n := len(tf.all()); n != 2 {
		t.Errorf("no new ticker expected when off, got %d", n)
	}
}

func TestSessionTickSubmitsHead(t *testing.T) {
	s, tf, sub, _ := startSession(t, []string{"apple", "pear", "plum"})

	post(t, s, RoundStart{Drawer: "alice"})
	post(t, s, AutoGuessToggled{On: true})
	drain(t, s)

	tf.all()[0].c <- time.Now()

	var submitted, left []string
	if err := s.Inspect(context.Background(), func(e *Engine) {
		submitted = append(submitted, sub.words...)
		left = e.Candidates()
	}); err != nil {
		t.Fatal(err)
	}
	expectWords(t, "submitted", submitted, []string{"apple"})
	expectWords(t, "left", left, []string{"pear", "plum"})
}

func TestSessionClosed(t *testing.T) {
	s, _, _, cancel := startSession(t, nil)
	cancel()
	<-s.Done()

	if err := s.Post(context.Background(), StatsReset{}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	if err := s.Inspect(context.Background(), func(*Engine) {}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}
