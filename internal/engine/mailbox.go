package engine

import "sync"

// mail is one unit of work queued for a handle: a notification, or the final
// retirement marker after which OnUnsubscribed fires.
type mail[T any] struct {
	n      Notification[T]
	retire bool
}

// mailbox is an unbounded FIFO with at most one drainer at a time.
type mailbox[T any] struct {
	mu      sync.Mutex
	queue   []mail[T]
	running bool
}

// push appends m and reports whether the caller must start a drainer.
func (b *mailbox[T]) push(m mail[T]) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, m)
	if b.running {
		return false
	}
	b.running = true
	return true
}

// next pops the head of the queue. When the queue is empty it marks the
// mailbox idle and returns false; the drainer must then exit.
func (b *mailbox[T]) next() (mail[T], bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		b.running = false
		b.queue = nil
		return mail[T]{}, false
	}
	m := b.queue[0]
	b.queue[0] = mail[T]{}
	b.queue = b.queue[1:]
	return m, true
}

// depth returns the number of queued entries.
func (b *mailbox[T]) depth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}
