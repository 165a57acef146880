// Package submit paces outgoing guesses before they reach the game.
package submit

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/bastiangx/guessr/internal/logger"
)

// Sink performs the actual send, typing the word into the page or writing
// it to the IPC peer.
type Sink interface {
	Send(ctx context.Context, word string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, word string) error

func (f SinkFunc) Send(ctx context.Context, word string) error { return f(ctx, word) }

// Throttled queues submissions and releases them to a Sink no faster than
// the limiter allows. Submit never blocks; when the queue is full the word
// is dropped.
type Throttled struct {
	sink    Sink
	limiter *rate.Limiter
	queue   chan string
	log     *log.Logger
}

// NewThrottled allows perSecond sends with the given burst. A perSecond of
// 0 or less disables pacing.
func NewThrottled(sink Sink, perSecond float64, burst, queue int) *Throttled {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Every(time.Duration(float64(time.Second) / perSecond))
	}
	if burst < 1 {
		burst = 1
	}
	if queue < 1 {
		queue = 1
	}
	return &Throttled{
		sink:    sink,
		limiter: rate.NewLimiter(limit, burst),
		queue:   make(chan string, queue),
		log:     logger.New("submit"),
	}
}

// Submit implements engine.Submitter.
func (t *Throttled) Submit(word string) {
	select {
	case t.queue <- word:
	default:
		t.log.Warn("submission queue full, dropping", "word", word)
	}
}

// Pending is the number of queued words.
func (t *Throttled) Pending() int {
	return len(t.queue)
}

// Run drains the queue until ctx ends. Send errors are logged and the
// word is not retried; the next guess supersedes it.
func (t *Throttled) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case word := <-t.queue:
			if err := t.limiter.Wait(ctx); err != nil {
				return err
			}
			if err := t.sink.Send(ctx, word); err != nil {
				t.log.Error("submit failed", "word", word, "err", err)
			}
		}
	}
}
