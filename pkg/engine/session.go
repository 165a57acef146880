package engine

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/bastiangx/guessr/internal/logger"
)

// ErrSessionClosed is returned by Post and Inspect once Run has returned.
var ErrSessionClosed = errors.New("engine: session closed")

// DefaultQueueSize is the event buffer of a new Session.
const DefaultQueueSize = 64

// Ticker is the part of time.Ticker a Session uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a running Ticker.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the default TickerFunc.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Session serializes every event source onto one goroutine: page events,
// typed input and the auto-guess timer. The engine is only ever touched
// from Run.
type Session struct {
	ID uuid.UUID

	engine    *Engine
	events    chan Event
	done      chan struct{}
	newTicker TickerFunc
	log       *log.Logger
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithTicker replaces the timer source, mostly for tests.
func WithTicker(f TickerFunc) SessionOption {
	return func(s *Session) { s.newTicker = f }
}

// WithQueueSize sets the event buffer.
func WithQueueSize(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.events = make(chan Event, n)
		}
	}
}

// NewSession wraps e. Call Run to start processing.
func NewSession(e *Engine, opts ...SessionOption) *Session {
	s := &Session{
		ID:        uuid.New(),
		engine:    e,
		events:    make(chan Event, DefaultQueueSize),
		done:      make(chan struct{}),
		newTicker: NewTimeTicker,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.New("session").With("id", s.ID.String()[:8])
	return s
}

// Post enqueues ev. It blocks while the queue is full.
func (s *Session) Post(ctx context.Context, ev Event) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Inspect runs fn against the engine on the session goroutine and waits
// for it. fn must not call back into the session.
func (s *Session) Inspect(ctx context.Context, fn func(*Engine)) error {
	ev := inspect{fn: fn, done: make(chan struct{})}
	if err := s.Post(ctx, ev); err != nil {
		return err
	}
	select {
	case <-ev.done:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run processes events in arrival order until ctx ends.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	var ticker Ticker
	var tick <-chan time.Time

	// the old timer is always stopped before a new one exists
	reschedule := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
		if s.engine.AutoGuessing() {
			ticker = s.newTicker(s.engine.Settings().AutoGuessInterval())
			tick = ticker.C()
			s.log.Debug("auto-guess scheduled", "every", s.engine.Settings().AutoGuessInterval())
		}
	}
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	reschedule()
	s.log.Debug("session running")

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("session stopped")
			return ctx.Err()
		case ev := <-s.events:
			s.engine.Dispatch(ev)
			switch ev.(type) {
			case SettingsSaved, AutoGuessToggled:
				reschedule()
			}
		case <-tick:
			s.engine.Tick()
		}
	}
}
