package subscriber

import (
	"context"
	"fmt"
	"io"
	"sync"

	"notifyd/internal/engine"
)

// Display prints every notification as one line to W.
type Display[T any] struct {
	Label string

	mu sync.Mutex
	w  io.Writer
}

// NewDisplay returns a Display writing to w.
func NewDisplay[T any](label string, w io.Writer) *Display[T] {
	return &Display[T]{Label: label, w: w}
}

func (d *Display[T]) Receive(ctx context.Context, n engine.Notification[T]) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := fmt.Fprintf(d.w, "[%s] %s = %v (seq %d)\n", d.Label, n.Topic, n.Value, n.Seq)
	return err
}

func (d *Display[T]) OnUnsubscribed(topic string, id engine.HandleID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "[%s] unsubscribed from %s\n", d.Label, topic)
}
