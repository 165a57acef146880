package storage

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Writer persists values in the background. Save snapshots the value on the
// caller's goroutine and returns at once; a single flusher goroutine pushes
// pending values to the Store. Several saves of one key before a flush
// collapse into the last one.
type Writer struct {
	store      Store
	flushMu    sync.Mutex
	mu         sync.Mutex
	pending    map[string][]byte
	signal     chan struct{}
	done       chan struct{}
	stopped    chan struct{}
	closed     bool
	maxRetries int
	retryDelay time.Duration
}

// NewWriter starts the background flusher.
func NewWriter(store Store, maxRetries int) *Writer {
	w := &Writer{
		store:      store,
		pending:    make(map[string][]byte),
		signal:     make(chan struct{}, 1),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		maxRetries: maxRetries,
		retryDelay: 200 * time.Millisecond,
	}
	go w.backgroundWriter()
	return w
}

// Save encodes v and queues it under key. Encoding failures are logged and
// dropped; persistence is fire-and-forget.
func (w *Writer) Save(key string, v any) {
	data, err := Encode(v)
	if err != nil {
		log.Errorf("Dropping save of %s: %v", key, err)
		return
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		log.Warnf("Save of %s after close ignored", key)
		return
	}
	w.pending[key] = data
	w.mu.Unlock()

	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// backgroundWriter flushes whenever Save signals, until Close
func (w *Writer) backgroundWriter() {
	defer close(w.stopped)
	for {
		select {
		case <-w.signal:
			w.flush(context.Background())
		case <-w.done:
			return
		}
	}
}

func (w *Writer) take() map[string][]byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	batch := w.pending
	w.pending = make(map[string][]byte)
	return batch
}

// flush writes one batch, retrying a failed batch a few times
func (w *Writer) flush(ctx context.Context) {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	batch := w.take()
	if batch == nil {
		return
	}

	for attempt := 0; ; attempt++ {
		err := w.store.Set(ctx, batch)
		if err == nil {
			return
		}
		if attempt >= w.maxRetries || ctx.Err() != nil {
			log.Errorf("Persisting %d keys failed %d times, giving up: %v", len(batch), attempt+1, err)
			return
		}
		log.Debugf("Persist failed (attempt %d/%d): %v", attempt+1, w.maxRetries, err)
		select {
		case <-time.After(time.Duration(attempt+1) * w.retryDelay):
		case <-ctx.Done():
		}
		// a newer save of the same key supersedes the retried value
		w.mu.Lock()
		for k := range w.pending {
			delete(batch, k)
		}
		w.mu.Unlock()
		if len(batch) == 0 {
			return
		}
	}
}

// Flush synchronously writes anything pending.
func (w *Writer) Flush(ctx context.Context) {
	w.flush(ctx)
}

// Close stops the flusher and writes whatever is still pending.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	<-w.stopped
	w.flush(ctx)
	return ctx.Err()
}
