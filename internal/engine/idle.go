package engine

import "sync"

// idleCounter counts queued or running deliveries and wakes waiters when the
// count returns to zero. The zero value is ready to use.
type idleCounter struct {
	mu   sync.Mutex
	n    int64
	idle chan struct{} // non-nil while n > 0, closed when n drops back to 0
}

var closedIdle = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (c *idleCounter) Add(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := c.n
	c.n += delta
	switch {
	case before == 0 && c.n > 0:
		c.idle = make(chan struct{})
	case before > 0 && c.n == 0:
		close(c.idle)
		c.idle = nil
	}
}

func (c *idleCounter) Load() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Idle returns a channel that is closed once the count is zero.
func (c *idleCounter) Idle() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idle == nil {
		return closedIdle
	}
	return c.idle
}
