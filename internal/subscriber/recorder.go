package subscriber

import (
	"context"
	"sync"

	"notifyd/internal/engine"
)

// Recorder keeps every notification it receives in memory.
type Recorder[T any] struct {
	mu      sync.Mutex
	got     []engine.Notification[T]
	retired []string
}

func NewRecorder[T any]() *Recorder[T] { return &Recorder[T]{} }

func (r *Recorder[T]) Receive(ctx context.Context, n engine.Notification[T]) error {
	r.mu.Lock()
	r.got = append(r.got, n)
	r.mu.Unlock()
	return nil
}

func (r *Recorder[T]) OnUnsubscribed(topic string, id engine.HandleID) {
	r.mu.Lock()
	r.retired = append(r.retired, topic)
	r.mu.Unlock()
}

// Notifications returns a copy of everything received so far.
func (r *Recorder[T]) Notifications() []engine.Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.Notification[T](nil), r.got...)
}

// Last returns the most recent notification, if any.
func (r *Recorder[T]) Last() (engine.Notification[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.got) == 0 {
		return engine.Notification[T]{}, false
	}
	return r.got[len(r.got)-1], true
}

// Unsubscribed returns the topics this recorder was detached from.
func (r *Recorder[T]) Unsubscribed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.retired...)
}
