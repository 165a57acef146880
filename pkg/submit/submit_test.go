package submit

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestThrottledDeliversInOrder(t *testing.T) {
	got := make(chan string, 8)
	sink := SinkFunc(func(_ context.Context, w string) error {
		got <- w
		return nil
	})
	th := NewThrottled(sink, 0, 1, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- th.Run(ctx) }()

	for _, w := range []string{"cat", "dog", "pig"} {
		th.Submit(w)
	}

	var words []string
	for i := 0; i < 3; i++ {
		select {
		case w := <-got:
			words = append(words, w)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, got %v", words)
		}
	}
	if !slices.Equal(words, []string{"cat", "dog", "pig"}) {
		t.Errorf("unexpected order %v", words)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestThrottledDropsWhenFull(t *testing.T) {
	th := NewThrottled(SinkFunc(func(context.Context, string) error { return nil }), 1, 1, 2)
	th.Submit("a")
	th.Submit("b")
	th.Submit("c")
	if n := th.Pending(); n != 2 {
		t.Errorf("expected 2 pending, got %d", n)
	}
}

func TestThrottledPaces(t *testing.T) {
	var stamps []time.Time
	got := make(chan struct{}, 4)
	sink := SinkFunc(func(context.Context, string) error {
		stamps = append(stamps, time.Now())
		got <- struct{}{}
		return nil
	})
	th := NewThrottled(sink, 20, 1, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = th.Run(ctx) }()

	th.Submit("a")
	th.Submit("b")
	<-got
	<-got

	if gap := stamps[1].Sub(stamps[0]); gap < 30*time.Millisecond {
		t.Errorf("second send came after %v, expected about 50ms", gap)
	}
}
