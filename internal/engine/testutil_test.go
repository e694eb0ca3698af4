package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// recorder is an in-memory subscriber that records everything it sees.
type recorder[T any] struct {
	mu    sync.Mutex
	got   []Notification[T]
	log   []string
	unsub []HandleID
}

func newRecorder[T any]() *recorder[T] { return &recorder[T]{} }

func (r *recorder[T]) Receive(ctx context.Context, n Notification[T]) error {
	r.mu.Lock()
	r.got = append(r.got, n)
	r.log = append(r.log, fmt.Sprintf("recv %s#%d", n.Topic, n.Seq))
	r.mu.Unlock()
	return nil
}

func (r *recorder[T]) OnUnsubscribed(topic string, id HandleID) {
	r.mu.Lock()
	r.unsub = append(r.unsub, id)
	r.log = append(r.log, "unsub "+topic)
	r.mu.Unlock()
}

func (r *recorder[T]) all() []Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification[T], len(r.got))
	copy(out, r.got)
	return out
}

func (r *recorder[T]) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.log...)
}

func (r *recorder[T]) unsubscribed() []HandleID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]HandleID(nil), r.unsub...)
}

func (r *recorder[T]) seqs() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, len(r.got))
	for i, n := range r.got {
		out[i] = n.Seq
	}
	return out
}

var errBoom = errors.New("boom")

// failing returns errBoom for every notification and counts calls.
type failing struct {
	mu    sync.Mutex
	calls []uint64
}

func (f *failing) Receive(ctx context.Context, n Notification[float64]) error {
	f.mu.Lock()
	f.calls = append(f.calls, n.Seq)
	f.mu.Unlock()
	return errBoom
}

func (f *failing) seqs() []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint64(nil), f.calls...)
}

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}

// newTestEngine builds an engine closed on test cleanup.
func newTestEngine(t *testing.T, cfg EngineConfig[float64]) *Engine[float64] {
	t.Helper()
	e := NewWithConfig(cfg)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = e.Close(ctx)
	})
	return e
}

func mustCreate(t *testing.T, e *Engine[float64], name string, v float64) {
	t.Helper()
	if err := e.CreateTopic(name, v); err != nil {
		t.Fatalf("CreateTopic(%s): %v", name, err)
	}
}

func mustSubscribe(t *testing.T, e *Engine[float64], name string, s Subscriber[float64]) HandleID {
	t.Helper()
	id, err := e.Subscribe(name, s)
	if err != nil {
		t.Fatalf("Subscribe(%s): %v", name, err)
	}
	return id
}

func mustPublish(t *testing.T, e *Engine[float64], name string, v float64) Notification[float64] {
	t.Helper()
	n, err := e.Publish(name, v)
	if err != nil {
		t.Fatalf("Publish(%s, %v): %v", name, v, err)
	}
	return n
}

func mustDrain(t *testing.T, e *Engine[float64]) {
	t.Helper()
	if err := e.Drain(testCtx(t)); err != nil {
		t.Fatalf("Drain: %v", err)
	}
}

func equalSeqs(got, want []uint64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
